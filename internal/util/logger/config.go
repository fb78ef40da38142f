package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 环境变量
const (
	// EnvLogLevel 日志级别，格式: 子系统=级别,子系统=级别,默认级别
	EnvLogLevel = "QUICUTIL_LOG_LEVEL"

	// EnvLogFormat 日志格式 (text 或 json)
	EnvLogFormat = "QUICUTIL_LOG_FORMAT"

	// EnvLogAddSource 是否添加源码位置
	EnvLogAddSource = "QUICUTIL_LOG_ADD_SOURCE"
)

// LogFormat 日志输出格式
type LogFormat int

const (
	// FormatText 文本格式（默认）
	FormatText LogFormat = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// ParseFormat 解析格式名称，未知名称按 text 处理
func ParseFormat(name string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return FormatJSON
	}
	return FormatText
}

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// SubsystemLevels 各子系统的日志级别
	SubsystemLevels map[string]slog.Level

	// Format 输出格式
	Format LogFormat

	// AddSource 是否添加源码位置
	AddSource bool
}

// DefaultConfig 默认配置：info 级别、文本格式
func DefaultConfig() *Config {
	return &Config{
		DefaultLevel:    slog.LevelInfo,
		SubsystemLevels: make(map[string]slog.Level),
		Format:          FormatText,
	}
}

// LevelForSubsystem 获取指定子系统的日志级别
func (c *Config) LevelForSubsystem(subsystem string) slog.Level {
	if level, ok := c.SubsystemLevels[subsystem]; ok {
		return level
	}
	return c.DefaultLevel
}

var (
	configMu    sync.RWMutex
	configCache *Config
	configOnce  sync.Once
)

// CurrentConfig 返回当前生效的配置
//
// 首次调用时从环境变量解析。
func CurrentConfig() *Config {
	configOnce.Do(func() {
		cfg := ConfigFromEnv()
		configMu.Lock()
		if configCache == nil {
			configCache = cfg
		}
		configMu.Unlock()
	})

	configMu.RLock()
	defer configMu.RUnlock()
	return configCache
}

// SetConfig 替换当前配置，并更新已创建 Logger 的级别
//
// 格式与 AddSource 只影响之后新建的 Logger。
func SetConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	configOnce.Do(func() {})

	configMu.Lock()
	configCache = cfg
	configMu.Unlock()

	levels.Range(func(key, value any) bool {
		value.(*slog.LevelVar).Set(cfg.LevelForSubsystem(key.(string)))
		return true
	})
}

// ConfigFromEnv 从环境变量解析配置
//
// 环境变量:
//   - QUICUTIL_LOG_LEVEL: 例如 migration=debug,nullcrypto=warn,info
//   - QUICUTIL_LOG_FORMAT: text 或 json
//   - QUICUTIL_LOG_ADD_SOURCE: true 或 false
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if levelStr := os.Getenv(EnvLogLevel); levelStr != "" {
		ApplyLevelSpec(cfg, levelStr)
	}

	if formatStr := os.Getenv(EnvLogFormat); formatStr != "" {
		cfg.Format = ParseFormat(formatStr)
	}

	if addSourceStr := os.Getenv(EnvLogAddSource); addSourceStr != "" {
		cfg.AddSource = addSourceStr != "false" && addSourceStr != "0"
	}

	return cfg
}

// ApplyLevelSpec 将级别描述写入配置
//
// 格式: subsystem=level,subsystem=level,defaultLevel
// 无法识别的级别会被忽略。
func ApplyLevelSpec(cfg *Config, spec string) {
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		subsystem, levelName, found := strings.Cut(part, "=")
		if !found {
			if level, ok := ParseLevel(part); ok {
				cfg.DefaultLevel = level
			}
			continue
		}

		if level, ok := ParseLevel(strings.TrimSpace(levelName)); ok {
			cfg.SubsystemLevels[strings.TrimSpace(subsystem)] = level
		}
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResetConfig 重置配置与 Logger 缓存（仅用于测试）
func ResetConfig() {
	configMu.Lock()
	configCache = nil
	configMu.Unlock()
	configOnce = sync.Once{}

	loggers.Range(func(key, _ any) bool {
		loggers.Delete(key)
		return true
	})
	levels.Range(func(key, _ any) bool {
		levels.Delete(key)
		return true
	})
}
