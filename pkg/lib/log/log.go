// Package log 是 quicutil 子系统日志的公开入口
//
// 模块外的调用方无法导入 internal 包，通过本包调整日志输出与级别。
// 所有子系统共享同一输出目标。
package log

import (
	"io"
	"log/slog"

	"github.com/dep2p/go-quicutil/internal/util/logger"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger 返回子系统 Logger，同名子系统共享实例
func Logger(subsystem string) *slog.Logger {
	return logger.Logger(subsystem)
}

// SetOutput 设置全部子系统的日志输出目标
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 设置单个子系统的级别
func SetLevel(subsystem string, level slog.Level) {
	logger.SetLevel(subsystem, level)
}

// SetGlobalLevel 设置全部子系统的级别
func SetGlobalLevel(level slog.Level) {
	logger.SetGlobalLevel(level)
}

// SetLevelSpec 按 "subsystem=level,...,default" 格式设置级别
//
// 格式与 QUICUTIL_LOG_LEVEL 相同，无法识别的级别被忽略。
func SetLevelSpec(spec string) {
	cfg := logger.DefaultConfig()
	cur := logger.CurrentConfig()
	cfg.Format = cur.Format
	cfg.AddSource = cur.AddSource
	logger.ApplyLevelSpec(cfg, spec)
	logger.SetConfig(cfg)
}

// Discard 返回丢弃全部输出的 Logger
func Discard() *slog.Logger {
	return logger.Discard()
}
