package fnv1a

import "math/bits"

// useFastPath 64 位平台上 bits.Mul64 为单条指令
const useFastPath = bits.UintSize == 64

// incrementalHash 将 data 逐字节折叠进累加器
func incrementalHash(hash Uint128, data []byte) Uint128 {
	if useFastPath {
		return incrementalHashFast(hash, data)
	}
	return incrementalHashSlow(hash, data)
}

// incrementalHashFast 快速路径
//
// (hi·2^64 + lo) × (2^88 + 315) mod 2^128
//
//	= lo×315 + ((hi×315 + lo<<24) mod 2^64)·2^64
//
// 只需一次 64×64→128 乘法。
func incrementalHashFast(hash Uint128, data []byte) Uint128 {
	hi, lo := hash.Hi, hash.Lo
	for _, c := range data {
		lo ^= uint64(c)
		mhi, mlo := bits.Mul64(lo, prime128Lo)
		hi = mhi + hi*prime128Lo + lo<<prime128HiShift
		lo = mlo
	}
	return Uint128{Hi: hi, Lo: lo}
}

// incrementalHashSlow 慢速路径，使用通用 Uint128 运算
func incrementalHashSlow(hash Uint128, data []byte) Uint128 {
	for _, c := range data {
		hash = hash.Xor(MakeUint128(0, uint64(c)))
		hash = hash.Mul(Prime128)
	}
	return hash
}
