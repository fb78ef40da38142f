package fnv1a

// FNV-1a 常量，见 http://www.isthe.com/chongo/tech/comp/fnv/
const (
	// Offset64 64 位偏移基
	Offset64 uint64 = 14695981039346656037

	// Prime64 64 位素数
	Prime64 uint64 = 1099511628211

	offset128Hi uint64 = 7809847782465536322
	offset128Lo uint64 = 7113472399480571277

	// 128 位素数 = 2^88 + 315，高 64 位恰为 2^24
	prime128Hi      uint64 = 16777216
	prime128Lo      uint64 = 315
	prime128HiShift        = 24
)

var (
	// Offset128 128 位偏移基（144066263297769815596495629667062367629）
	Offset128 = MakeUint128(offset128Hi, offset128Lo)

	// Prime128 128 位素数（309485009821345068724781371）
	Prime128 = MakeUint128(prime128Hi, prime128Lo)
)

// Hash64 计算 64 位 FNV-1a 摘要
//
// 每次调用都从偏移基开始；空输入返回 Offset64。
func Hash64(data []byte) uint64 {
	hash := Offset64
	for _, c := range data {
		hash ^= uint64(c)
		hash *= Prime64
	}
	return hash
}

// Hash128 计算单个缓冲区的 128 位 FNV-1a 摘要
func Hash128(data []byte) Uint128 {
	return Hash128Three(data, nil, nil)
}

// Hash128Two 依次折叠两个缓冲区
func Hash128Two(data1, data2 []byte) Uint128 {
	return Hash128Three(data1, data2, nil)
}

// Hash128Three 依次折叠三个缓冲区
//
// data2 为空时直接返回 data1 的结果；data3 为空时直接返回前两者的结果。
// 空的尾部缓冲区视为不存在，这一点决定了摘要的稳定性，不能改变。
func Hash128Three(data1, data2, data3 []byte) Uint128 {
	hash := incrementalHash(Offset128, data1)
	if len(data2) == 0 {
		return hash
	}

	hash = incrementalHash(hash, data2)
	if len(data3) == 0 {
		return hash
	}
	return incrementalHash(hash, data3)
}
