// Package lib 包含与架构组件无关的通用工具库
//
//   - fnv1a: FNV-1a 64/128 位哈希与 12 字节短序列化
//   - pathchange: 对端地址变化分类
//   - log: 子系统日志的公开入口
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-quicutil/pkg/lib/fnv1a"
//	    "github.com/dep2p/go-quicutil/pkg/lib/pathchange"
//	)
package lib
