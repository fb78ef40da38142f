// Package quicutil 提供 QUIC 协议栈使用的基础工具
//
// # 组成
//
//   - pkg/lib/fnv1a: FNV-1a 64/128 位哈希及 12 字节截断序列化
//   - pkg/lib/pathchange: 对端地址变化分类
//   - internal/core/nullcrypto: 基于 FNV-1a 128 的空加密完整性校验
//   - internal/core/migration: 按连接 ID 跟踪对端地址并统计迁移
//   - internal/debug: 日志环形缓冲区、转储文件与本地自省服务
//
// # 快速开始
//
//	rt, err := quicutil.New(
//	    quicutil.WithPerspective(types.PerspectiveServer),
//	    quicutil.WithIntrospect("127.0.0.1:6060"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	sealed, err := rt.Seal(nil, header, payload)
//	ev, err := rt.ObservePeer(connID, udpAddr)
//
// 各组件通过 go.uber.org/fx 组装，见 fx.go。
package quicutil
