package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-quicutil/internal/config"
)

// invoke 以默认配置运行子命令
func invoke(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	for _, c := range commands {
		if c.name == name {
			var out bytes.Buffer
			err := c.run(context.Background(), config.NewConfig(), args, &out)
			return out.String(), err
		}
	}
	t.Fatalf("unknown command %q", name)
	return "", nil
}

func TestHash64(t *testing.T) {
	out, err := invoke(t, "hash64", "a")
	require.NoError(t, err)
	assert.Equal(t, "af63dc4c8601ec8c\n", out)

	out, err = invoke(t, "hash64", "-hex", "666f6f626172")
	require.NoError(t, err)
	assert.Equal(t, "85944171f73967e8\n", out)

	_, err = invoke(t, "hash64")
	assert.ErrorIs(t, err, errUsage)

	_, err = invoke(t, "hash64", "-hex", "zz")
	assert.Error(t, err)
}

func TestHash128(t *testing.T) {
	out, err := invoke(t, "hash128", "a")
	require.NoError(t, err)
	assert.Equal(t,
		"hash128 d228cb696f1a8caf78912b704e4a8964\nshort   64894a4e702b9178af8c1a6f\n",
		out)

	// 末尾空段不影响结果
	withEmpty, err := invoke(t, "hash128", "a", "")
	require.NoError(t, err)
	assert.Equal(t, out, withEmpty)

	_, err = invoke(t, "hash128", "a", "b", "c", "d")
	assert.ErrorIs(t, err, errUsage)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		old, new, want string
	}{
		{"1.2.3.4:80", "1.2.3.4:80", "NO_CHANGE"},
		{"1.2.3.4:80", "1.2.3.4:81", "PORT_CHANGE"},
		{"1.2.3.4:80", "1.2.3.5:80", "IPV4_SUBNET_CHANGE"},
		{"1.2.3.4:80", "1.2.4.4:80", "IPV4_TO_IPV4_CHANGE"},
		{"1.2.3.4:80", "[::1]:80", "IPV4_TO_IPV6_CHANGE"},
		{"[::1]:80", "1.2.3.4:80", "IPV6_TO_IPV4_CHANGE"},
		{"[::1]:80", "[::2]:80", "IPV6_TO_IPV6_CHANGE"},
		{"-", "1.2.3.4:80", "NO_CHANGE"},
	}
	for _, tc := range cases {
		out, err := invoke(t, "classify", tc.old, tc.new)
		require.NoError(t, err, "%s -> %s", tc.old, tc.new)
		assert.Equal(t, tc.want+"\n", out, "%s -> %s", tc.old, tc.new)
	}

	_, err := invoke(t, "classify", "1.2.3.4:80")
	assert.ErrorIs(t, err, errUsage)

	_, err = invoke(t, "classify", "nonsense", "1.2.3.4:80")
	assert.Error(t, err)
}

func TestSealOpen(t *testing.T) {
	sealed, err := invoke(t, "seal", "ad", "pt")
	require.NoError(t, err)
	assert.Equal(t, "136467f0a4bc2be7e6e47f3f7074\n", sealed)

	hexSealed := strings.TrimSpace(sealed)

	out, err := invoke(t, "open", "-perspective", "server", "ad", hexSealed)
	require.NoError(t, err)
	assert.Equal(t, "7074\n", out)

	// 同视角校验失败
	_, err = invoke(t, "open", "-perspective", "client", "ad", hexSealed)
	assert.Error(t, err)

	_, err = invoke(t, "seal", "-perspective", "relay", "ad", "pt")
	assert.ErrorIs(t, err, errUsage)
}

func TestTuning(t *testing.T) {
	out, err := invoke(t, "tuning")
	require.NoError(t, err)
	assert.Contains(t, out, "DefaultMaxPacketSize 1350")

	path := filepath.Join(t.TempDir(), "honest.conf")
	require.NoError(t, os.WriteFile(path, []byte("DefaultMaxPacketSize 1400 PacingRate 2\n"), 0o600))

	out, err = invoke(t, "tuning", "-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "DefaultMaxPacketSize 1400")
	assert.Contains(t, out, "PacingRate 2")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errUsage)
	assert.ErrorIs(t, run([]string{"frobnicate"}, &out), errUsage)
}

func TestRun_Dispatch(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"hash64", "a"}, &out))
	assert.Equal(t, "af63dc4c8601ec8c\n", out.String())
}
