package fnv1a

import (
	"encoding/binary"
	"errors"
)

// ShortSize 截断序列化后的字节数
const ShortSize = 12

// ErrShortBuffer 缓冲区不足 12 字节
var ErrShortBuffer = errors.New("fnv1a: buffer shorter than 12 bytes")

// SerializeUint128Short 将 128 位摘要截断序列化为 12 字节
//
// 布局（小端序）：
//
//	[0:8]   低 64 位
//	[8:12]  高 64 位的低 32 位
//
// 高 64 位的最高 4 字节被丢弃，本函数不可逆。
func SerializeUint128Short(v Uint128) [ShortSize]byte {
	var out [ShortSize]byte
	binary.LittleEndian.PutUint64(out[0:8], v.Lo)
	binary.LittleEndian.PutUint32(out[8:12], uint32(v.Hi))
	return out
}

// AppendUint128Short 将 12 字节截断序列化结果追加到 dst
func AppendUint128Short(dst []byte, v Uint128) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, v.Lo)
	return binary.LittleEndian.AppendUint32(dst, uint32(v.Hi))
}

// ParseUint128Short 读取 12 字节截断形式
//
// 被丢弃的最高 32 位无法恢复，返回值中恒为 0。
// 只有在比较同样截断过的摘要时才有意义。
func ParseUint128Short(b []byte) (Uint128, error) {
	if len(b) < ShortSize {
		return Uint128{}, ErrShortBuffer
	}
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := uint64(binary.LittleEndian.Uint32(b[8:12]))
	return Uint128{Hi: hi, Lo: lo}, nil
}
