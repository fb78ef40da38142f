// Package introspect 提供本地调试 HTTP 服务
//
// 默认绑定到 127.0.0.1，不暴露到网络。
//
// # 端点
//
//	GET  /debug/introspect         - 诊断汇总 (JSON)
//	GET  /debug/introspect/runtime - 运行时信息
//	GET  /debug/log                - 日志环形缓冲区内容
//	DELETE /debug/log              - 清空日志环形缓冲区
//	POST /debug/dump               - 将环形缓冲区写出到转储文件
//	GET  /metrics                  - Prometheus 指标
//	GET  /debug/pprof/*            - Go pprof 端点
//	GET  /health                   - 健康检查
//
// # 使用示例
//
//	server := introspect.New(introspect.Config{
//	    Addr:     "127.0.0.1:6060",
//	    Gatherer: registry,
//	    Dumper:   dumper,
//	})
//	server.Start(ctx)
//	defer server.Stop()
//
// 通过 config.Debug.EnableIntrospect 启用。
package introspect
