package fnv1a

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

func toBig(u Uint128) *big.Int {
	hi := new(big.Int).SetUint64(u.Hi)
	return hi.Lsh(hi, 64).Or(hi, new(big.Int).SetUint64(u.Lo))
}

func TestUint128_MulMatchesBig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct{ a, b Uint128 }{
		{MakeUint128(0, 0), MakeUint128(0, 0)},
		{MakeUint128(^uint64(0), ^uint64(0)), MakeUint128(^uint64(0), ^uint64(0))},
		{MakeUint128(0, ^uint64(0)), MakeUint128(0, ^uint64(0))},
		{Offset128, Prime128},
	}
	for i := 0; i < 500; i++ {
		cases = append(cases, struct{ a, b Uint128 }{
			MakeUint128(rng.Uint64(), rng.Uint64()),
			MakeUint128(rng.Uint64(), rng.Uint64()),
		})
	}

	for _, c := range cases {
		want := new(big.Int).Mul(toBig(c.a), toBig(c.b))
		want.Mod(want, two128)
		assert.Equal(t, 0, want.Cmp(toBig(c.a.Mul(c.b))), "%s * %s", c.a, c.b)
	}
}

func TestUint128_AddCarries(t *testing.T) {
	got := MakeUint128(0, ^uint64(0)).Add(MakeUint128(0, 1))
	assert.Equal(t, MakeUint128(1, 0), got)

	// 最高位溢出回绕
	got = MakeUint128(^uint64(0), ^uint64(0)).Add(MakeUint128(0, 1))
	assert.True(t, got.IsZero())
}

func TestUint128_Lsh(t *testing.T) {
	v := MakeUint128(0, 0xffffffff)
	assert.Equal(t, v, v.Lsh(0))
	assert.Equal(t, MakeUint128(0xffffffff00000000, 0), v.Lsh(96))
	assert.Equal(t, MakeUint128(0xf, 0xfffffff000000000), v.Lsh(36))
	assert.True(t, v.Lsh(128).IsZero())
}

func TestUint128_BitOps(t *testing.T) {
	a := MakeUint128(0xff00, 0x00ff)
	b := MakeUint128(0x0ff0, 0x0ff0)
	assert.Equal(t, MakeUint128(0xf0f0, 0x0f0f), a.Xor(b))
	assert.Equal(t, MakeUint128(0x0f00, 0x00f0), a.And(b))
	assert.Equal(t, MakeUint128(^uint64(0xff00), ^uint64(0x00ff)), a.Not())
	assert.True(t, a.Equal(MakeUint128(0xff00, 0x00ff)))
}

func TestUint128_String(t *testing.T) {
	assert.Equal(t, "6c62272e07bb014262b821756295c58d", Offset128.String())
	assert.Equal(t, "0000000001000000000000000000013b", Prime128.String())
}
