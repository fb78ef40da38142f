// Package nullcrypto 实现 QUIC 握手前数据包的空加密
//
// 空加密不提供机密性，只在明文前附加 12 字节完整性标签：
//
//	tag = SerializeUint128Short(FNV1a-128(associatedData, plaintext, 视角标签))
//
// 其中视角标签为发送方的 "Client" 或 "Server"，摘要最高 32 位清零。
// 接收方使用对端视角重新计算并比较标签。
//
// 标签基于非加密哈希，只能检测传输损坏，不能抵御主动篡改。
package nullcrypto
