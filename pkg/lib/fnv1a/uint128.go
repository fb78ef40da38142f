package fnv1a

import "fmt"

const mask32 = 0xFFFFFFFF

// Uint128 128 位无符号整数
//
// 以 (高 64 位, 低 64 位) 表示，所有运算按 2^128 取模回绕。
// 零值即为 0。
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MakeUint128 由高低两个 64 位字构造 Uint128
func MakeUint128(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

// High64 返回高 64 位
func (u Uint128) High64() uint64 {
	return u.Hi
}

// Low64 返回低 64 位
func (u Uint128) Low64() uint64 {
	return u.Lo
}

// IsZero 是否为 0
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Equal 逐位比较
func (u Uint128) Equal(v Uint128) bool {
	return u.Hi == v.Hi && u.Lo == v.Lo
}

// Xor 按位异或
func (u Uint128) Xor(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi ^ v.Hi, Lo: u.Lo ^ v.Lo}
}

// And 按位与
func (u Uint128) And(v Uint128) Uint128 {
	return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo}
}

// Not 按位取反
func (u Uint128) Not() Uint128 {
	return Uint128{Hi: ^u.Hi, Lo: ^u.Lo}
}

// Lsh 左移 n 位，n >= 128 时结果为 0
func (u Uint128) Lsh(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Hi: u.Lo << (n - 64), Lo: 0}
	}
	return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
}

// Add 加法，低位进位手动传播到高位
func (u Uint128) Add(v Uint128) Uint128 {
	lo := u.Lo + v.Lo
	var carry uint64
	if lo < u.Lo {
		carry = 1
	}
	return Uint128{Hi: u.Hi + v.Hi + carry, Lo: lo}
}

// Mul 乘法（模 2^128）
//
// 将两个操作数拆为 4 个 32 位分段做竖式乘法，每一步的部分积、
// 已有结果与进位之和不超过 2^64-1，不会溢出 uint64。
// 超出第 4 段的部分直接丢弃。
func (u Uint128) Mul(v Uint128) Uint128 {
	a := [4]uint64{u.Lo & mask32, u.Lo >> 32, u.Hi & mask32, u.Hi >> 32}
	b := [4]uint64{v.Lo & mask32, v.Lo >> 32, v.Hi & mask32, v.Hi >> 32}

	var r [4]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; i+j < 4; j++ {
			t := a[i]*b[j] + r[i+j] + carry
			r[i+j] = t & mask32
			carry = t >> 32
		}
	}

	return Uint128{Hi: r[3]<<32 | r[2], Lo: r[1]<<32 | r[0]}
}

// String 返回 32 位十六进制表示
func (u Uint128) String() string {
	return fmt.Sprintf("%016x%016x", u.Hi, u.Lo)
}
