// Package migration 跟踪 QUIC 连接的对端地址变化
//
// Tracker 按连接 ID 记录最近一次观察到的对端地址。收到来自新地址的
// 数据包时，通过 pathchange.DetermineAddressChangeType 判定变化类型，
// 区分 NAT 重绑定与真正的连接迁移，并记录日志与 prometheus 指标。
//
// 连接 ID 以 FNV-1a 64 位指纹作为键，存放在有界 LRU 中，
// 超出容量时淘汰最久未活动的连接。
package migration
