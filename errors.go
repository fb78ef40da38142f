package quicutil

import "errors"

// 公共错误定义
var (
	// ErrNotStarted 运行时未启动
	ErrNotStarted = errors.New("runtime not started")

	// ErrAlreadyStarted 运行时已启动
	ErrAlreadyStarted = errors.New("runtime already started")

	// ErrClosed 运行时已关闭
	ErrClosed = errors.New("runtime closed")

	// ErrDumpDisabled 日志缓冲区未启用
	ErrDumpDisabled = errors.New("debug ring buffer disabled")
)
