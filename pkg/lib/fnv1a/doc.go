// Package fnv1a 提供 QUIC 使用的 FNV-1a 非加密哈希
//
// 本包实现 64 位与 128 位两种宽度的 FNV-1a 摘要，用于连接 ID、
// 数据包内容等字节序列的指纹计算（查找、去重、完整性校验）。
//
// 注意：FNV-1a 不具备抗碰撞能力，不能用于需要对抗攻击者的场景。
//
// # 基本用法
//
//	// 64 位摘要
//	h := fnv1a.Hash64([]byte("connection-id"))
//
//	// 128 位摘要，最多折叠三个缓冲区
//	d := fnv1a.Hash128Three(header, payload, []byte("Client"))
//
//	// 12 字节截断序列化（有损）
//	tag := fnv1a.SerializeUint128Short(d)
//
// # 多缓冲区折叠规则
//
// Hash128Three 依次折叠 data1、data2、data3。若 data2 为空则直接返回，
// 若 data3 为空同样直接返回。因此空的尾部缓冲区被视为"不存在"：
//
//	Hash128(b) == Hash128Two(b, nil) == Hash128Three(b, nil, nil)
//
// # 快速路径与慢速路径
//
// 128 位累加器有两种等价实现：
//
//   - 快速路径：利用素数高 64 位为 2^24 的形态，配合 math/bits.Mul64 完成乘法
//   - 慢速路径：通用 Uint128 乘法，按 32 位分段手动传播进位
//
// 64 位平台默认使用快速路径，其余平台使用慢速路径。两者对任意输入逐位一致。
//
// # 序列化
//
// SerializeUint128Short 输出 12 字节：低 64 位（8 字节）加上高 64 位的
// 低 32 位（4 字节），均为小端序。高 64 位的最高 4 字节被丢弃，无法恢复。
// 字节序固定为小端，与主机字节序无关，以保持线上格式兼容。
package fnv1a
