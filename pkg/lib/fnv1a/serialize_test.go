package fnv1a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeUint128Short_Layout(t *testing.T) {
	v := MakeUint128(0x0102030405060708, 0x1112131415161718)
	got := SerializeUint128Short(v)

	want := [ShortSize]byte{
		0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11, // 低 64 位，小端
		0x08, 0x07, 0x06, 0x05, // 高 64 位的低 32 位，小端
	}
	assert.Equal(t, want, got)
	assert.Len(t, got[:], 12)
}

func TestSerializeUint128Short_Deterministic(t *testing.T) {
	v := Hash128([]byte("payload"))
	assert.Equal(t, SerializeUint128Short(v), SerializeUint128Short(v))
}

func TestSerializeUint128Short_TopBytesUnrecoverable(t *testing.T) {
	lo := uint64(0x1112131415161718)
	a := MakeUint128(0xAAAAAAAA05060708, lo)
	b := MakeUint128(0xBBBBBBBB05060708, lo)

	// 仅最高 4 字节不同的两个值序列化结果相同
	assert.Equal(t, SerializeUint128Short(a), SerializeUint128Short(b))

	buf := SerializeUint128Short(a)
	back, err := ParseUint128Short(buf[:])
	require.NoError(t, err)
	assert.NotEqual(t, a, back)
	assert.Equal(t, uint64(0x05060708), back.High64())
	assert.Equal(t, lo, back.Low64())
}

func TestAppendUint128Short(t *testing.T) {
	v := Hash128Three([]byte("a"), []byte("b"), []byte("c"))
	prefix := []byte{0xde, 0xad}

	out := AppendUint128Short(prefix, v)
	require.Len(t, out, 2+ShortSize)

	arr := SerializeUint128Short(v)
	assert.Equal(t, arr[:], out[2:])
	assert.Equal(t, []byte{0xde, 0xad}, out[:2])
}

func TestParseUint128Short_ShortBuffer(t *testing.T) {
	_, err := ParseUint128Short(make([]byte, 11))
	assert.ErrorIs(t, err, ErrShortBuffer)
}
