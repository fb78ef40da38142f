package quicutil

import (
	"context"
	"net"
	"net/http"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/quic-go/quic-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/core/nullcrypto"
	"github.com/dep2p/go-quicutil/internal/util/logger"
	"github.com/dep2p/go-quicutil/pkg/types"
)

func startRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	opts = append([]Option{WithDumpDir(t.TempDir())}, opts...)
	rt, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, rt.Start(context.Background()))
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func udp(ip string, port int) *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(ip), Port: port}
}

func TestRuntime_Lifecycle(t *testing.T) {
	rt, err := New(WithDumpDir(t.TempDir()))
	require.NoError(t, err)

	assertGated(t, rt, ErrNotStarted)

	ctx := context.Background()
	require.NoError(t, rt.Start(ctx))
	assert.ErrorIs(t, rt.Start(ctx), ErrAlreadyStarted)

	require.NoError(t, rt.Close())
	require.NoError(t, rt.Close())
	assert.ErrorIs(t, rt.Start(ctx), ErrClosed)

	assertGated(t, rt, ErrClosed)
}

// assertGated 检查所有运行期操作都返回 want
func assertGated(t *testing.T, rt *Runtime, want error) {
	t.Helper()
	id := quic.ConnectionIDFromBytes([]byte{1})

	_, err := rt.ObservePeer(id, udp("1.2.3.4", 1))
	assert.ErrorIs(t, err, want, "ObservePeer")

	_, err = rt.ForgetPeer(id)
	assert.ErrorIs(t, err, want, "ForgetPeer")

	_, err = rt.Seal(nil, []byte("ad"), []byte("pt"))
	assert.ErrorIs(t, err, want, "Seal")

	_, err = rt.Open(nil, []byte("ad"), make([]byte, nullcrypto.TagSize))
	assert.ErrorIs(t, err, want, "Open")

	_, err = rt.Dump()
	assert.ErrorIs(t, err, want, "Dump")
}

func TestRuntime_SealOpenBetweenPerspectives(t *testing.T) {
	client := startRuntime(t, WithPerspective(types.PerspectiveClient))
	server := startRuntime(t, WithPerspective(types.PerspectiveServer))

	header := []byte{0xc0, 0x00, 0x00, 0x00, 0x01}
	payload := []byte("CHLO")

	sealed, err := client.Seal(nil, header, payload)
	require.NoError(t, err)
	assert.Len(t, sealed, len(payload)+nullcrypto.TagSize)

	opened, err := server.Open(nil, header, sealed)
	require.NoError(t, err)
	assert.Equal(t, payload, opened)

	// 同一视角无法打开自己发出的包
	_, err = client.Open(nil, header, sealed)
	assert.ErrorIs(t, err, nullcrypto.ErrTagMismatch)
}

func TestRuntime_ObservePeerCountsMigrations(t *testing.T) {
	rt := startRuntime(t)
	id := quic.ConnectionIDFromBytes([]byte{0xde, 0xad, 0xbe, 0xef})

	ev, err := rt.ObservePeer(id, udp("192.0.2.1", 4433))
	require.NoError(t, err)
	assert.Equal(t, types.NoChange, ev.Change)

	ev, err = rt.ObservePeer(id, udp("2001:db8::1", 4433))
	require.NoError(t, err)
	assert.Equal(t, types.IPv4ToIPv6Change, ev.Change)
	assert.True(t, ev.IsMigration())

	n, err := testutil.GatherAndCount(rt.Registry(), "quicutil_peer_address_changes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err := rt.ForgetPeer(id)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, rt.Tracker().Len())

	removed, err = rt.ForgetPeer(id)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRuntime_Dump(t *testing.T) {
	rt := startRuntime(t)

	logger.Logger("runtime-test").Warn("before dump")
	path, err := rt.Dump()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before dump")
}

func TestRuntime_DumpDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Debug.RingSize = 0
	rt := startRuntime(t, WithConfig(cfg))

	_, err := rt.Dump()
	assert.ErrorIs(t, err, ErrDumpDisabled)
}

func TestRuntime_Introspect(t *testing.T) {
	rt := startRuntime(t, WithIntrospect("127.0.0.1:0"))

	addr := rt.IntrospectAddr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRuntime_IntrospectDisabledByDefault(t *testing.T) {
	rt := startRuntime(t)
	assert.Empty(t, rt.IntrospectAddr())
}

func TestRuntime_CustomRegistryAndFxOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	invoked := false

	rt := startRuntime(t,
		WithRegistry(reg),
		WithFxOptions(fx.Invoke(func(g prometheus.Gatherer) {
			invoked = g == prometheus.Gatherer(reg)
		})),
	)

	assert.Same(t, reg, rt.Registry())
	assert.True(t, invoked)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithMigrationCacheSize(0))
	assert.Error(t, err)

	_, err = New(WithPerspective(types.Perspective(9)))
	assert.Error(t, err)

	_, err = New(WithConfig(config.NewConfig()), WithConfigFile("x.yaml"))
	assert.Error(t, err)

	_, err = New(WithConfig(nil))
	assert.Error(t, err)
}

func TestNew_OverridesAfterConfig(t *testing.T) {
	rt, err := New(
		WithConfig(config.NewConfig()),
		WithMigrationCacheSize(12),
		WithPerspective(types.PerspectiveServer),
	)
	require.NoError(t, err)

	assert.Equal(t, 12, rt.Config().Migration.CacheSize)
	assert.Equal(t, types.PerspectiveServer, rt.Encrypter().Perspective())
	assert.Equal(t, types.PerspectiveServer, rt.Decrypter().Perspective())
}

func TestVersionInfo(t *testing.T) {
	defer func(c, d string) { GitCommit, BuildDate = c, d }(GitCommit, BuildDate)

	GitCommit, BuildDate = "", ""
	assert.Equal(t, "quicutil "+Version, VersionInfo())

	GitCommit, BuildDate = "0123456789abcdef", "2026-10-19"
	assert.Equal(t, "quicutil "+Version+" (01234567) built 2026-10-19", VersionInfo())
}
