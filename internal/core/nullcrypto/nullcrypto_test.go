package nullcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/pkg/lib/fnv1a"
	"github.com/dep2p/go-quicutil/pkg/types"
)

var (
	header  = []byte{0x0c, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	payload = []byte("CHLO handshake payload")
)

func TestSealOpen_RoundTrip(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveClient)
	dec := NewDecrypter(types.PerspectiveServer)

	sealed := enc.Seal(nil, header, payload)
	require.Len(t, sealed, TagSize+len(payload))
	assert.Equal(t, payload, sealed[TagSize:])

	opened, err := dec.Open(nil, header, sealed)
	require.NoError(t, err)
	assert.Equal(t, payload, opened)
}

func TestSeal_TagLayout(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveServer)
	sealed := enc.Seal(nil, header, payload)

	hash := fnv1a.Hash128Three(header, payload, []byte("Server"))
	want := fnv1a.SerializeUint128Short(hash)
	assert.Equal(t, want[:], sealed[:TagSize])
}

func TestSeal_AppendsToDst(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveClient)
	prefix := []byte("hdr")
	sealed := enc.Seal(prefix, nil, payload)
	assert.Equal(t, []byte("hdr"), sealed[:3])
	assert.Equal(t, 3+enc.Overhead()+len(payload), len(sealed))
}

func TestOpen_WrongPerspective(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveClient)
	// 客户端收到客户端自己的包：按 "Server" 校验失败
	dec := NewDecrypter(types.PerspectiveClient)

	_, err := dec.Open(nil, header, enc.Seal(nil, header, payload))
	assert.ErrorIs(t, err, ErrTagMismatch)
}

func TestOpen_Tampered(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveServer)
	dec := NewDecrypter(types.PerspectiveClient)
	sealed := enc.Seal(nil, header, payload)

	t.Run("payload", func(t *testing.T) {
		bad := append([]byte(nil), sealed...)
		bad[len(bad)-1] ^= 0x01
		_, err := dec.Open(nil, header, bad)
		assert.ErrorIs(t, err, ErrTagMismatch)
	})

	t.Run("tag", func(t *testing.T) {
		bad := append([]byte(nil), sealed...)
		bad[0] ^= 0x80
		_, err := dec.Open(nil, header, bad)
		assert.ErrorIs(t, err, ErrTagMismatch)
	})

	t.Run("associated data", func(t *testing.T) {
		_, err := dec.Open(nil, []byte("other header"), sealed)
		assert.ErrorIs(t, err, ErrTagMismatch)
	})
}

func TestOpen_TooShort(t *testing.T) {
	dec := NewDecrypter(types.PerspectiveServer)
	_, err := dec.Open(nil, header, make([]byte, TagSize-1))
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestOpen_EmptyPayload(t *testing.T) {
	enc := NewEncrypter(types.PerspectiveClient)
	dec := NewDecrypter(types.PerspectiveServer)

	sealed := enc.Seal(nil, header, nil)
	require.Len(t, sealed, TagSize)

	opened, err := dec.Open(nil, header, sealed)
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, types.EncryptionNone, NewEncrypter(types.PerspectiveClient).Level())
	assert.Equal(t, types.EncryptionNone, NewDecrypter(types.PerspectiveClient).Level())
}

func TestModule_UsesConfiguredPerspective(t *testing.T) {
	cfg := config.NewConfig()
	cfg.NullCrypto.Perspective = "server"

	var enc *Encrypter
	var dec *Decrypter
	app := fxtest.New(t,
		config.Module(cfg),
		Module,
		fx.Populate(&enc, &dec),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, types.PerspectiveServer, enc.Perspective())
	assert.Equal(t, types.PerspectiveServer, dec.Perspective())
}
