// Package logger 提供 go-quicutil 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（QUICUTIL_LOG_LEVEL, QUICUTIL_LOG_FORMAT）
//   - 运行时切换输出目标（例如同时写入调试环形缓冲区）
//
// 使用示例:
//
//	var log = logger.Logger("migration")
//
//	func observe() {
//	    log.Info("对端地址变化", "from", prev, "to", cur, "type", change)
//	}
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// levels 各子系统共享的级别变量，子 Logger（With）同样生效
	levels sync.Map // map[string]*slog.LevelVar
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := CurrentConfig()
	lv := new(slog.LevelVar)
	lv.Set(cfg.LevelForSubsystem(subsystem))

	logger := slog.New(newHandler(subsystem, lv, cfg))

	actual, loaded := loggers.LoadOrStore(subsystem, logger)
	if !loaded {
		levels.Store(subsystem, lv)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if lv, ok := levels.Load(subsystem); ok {
		lv.(*slog.LevelVar).Set(level)
	}
}

// SetGlobalLevel 设置所有已创建子系统的日志级别
func SetGlobalLevel(level slog.Level) {
	levels.Range(func(_, value any) bool {
		value.(*slog.LevelVar).Set(level)
		return true
	})
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 同样会写入新的目标。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}

// AddTee 注册附加输出目标，返回的 remove 用于注销
//
// 附加目标不改变 Output()，注销顺序任意。tee 的写入错误被忽略。
// remove 可重复调用。
func AddTee(w io.Writer) (remove func()) {
	t := &tee{w: w}

	teesMu.Lock()
	next := make([]*tee, len(tees), len(tees)+1)
	copy(next, tees)
	tees = append(next, t)
	teesMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			teesMu.Lock()
			defer teesMu.Unlock()
			next := make([]*tee, 0, len(tees))
			for _, cur := range tees {
				if cur != t {
					next = append(next, cur)
				}
			}
			tees = next
		})
	}
}

// Output 返回当前全局日志输出目标
func Output() io.Writer {
	globalOutputMu.RLock()
	defer globalOutputMu.RUnlock()
	return globalOutput
}

// Discard 返回一个丢弃所有日志的 Logger
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// With 创建带有预设属性的 Logger
func With(subsystem string, args ...any) *slog.Logger {
	return Logger(subsystem).With(args...)
}
