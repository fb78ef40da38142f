// Package config 提供 go-quicutil 配置管理层
//
// config 包负责：
//   - 定义配置结构与默认值
//   - 从 JSON / YAML 文件与环境变量加载配置
//   - 读取旧式 "键 值" 调优文件
//   - 配置校验
//
// 配置值由调用方显式构造并传递，不存在进程级全局配置。
package config

// Config 统一配置
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log"`

	// Tuning 传输调优参数
	Tuning TuningConfig `json:"tuning" yaml:"tuning"`

	// Migration 连接迁移跟踪配置
	Migration MigrationConfig `json:"migration" yaml:"migration"`

	// NullCrypto 空加密配置
	NullCrypto NullCryptoConfig `json:"null_crypto" yaml:"null_crypto"`

	// Debug 调试转储配置
	Debug DebugConfig `json:"debug" yaml:"debug"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Log:        DefaultLogConfig(),
		Tuning:     DefaultTuningConfig(),
		Migration:  DefaultMigrationConfig(),
		NullCrypto: DefaultNullCryptoConfig(),
		Debug:      DefaultDebugConfig(),
	}
}

// ============================================================================
//                              日志配置
// ============================================================================

// LogConfig 日志配置
type LogConfig struct {
	// Level 级别描述，格式同 QUICUTIL_LOG_LEVEL
	// 示例: migration=debug,info
	Level string `json:"level" yaml:"level"`

	// Format 输出格式: text 或 json
	Format string `json:"format" yaml:"format"`

	// File 日志文件路径，为空时输出到 stderr
	File string `json:"file" yaml:"file"`
}

// ============================================================================
//                              调优参数
// ============================================================================

// TuningConfig 传输调优参数
//
// 字段与旧式调优文件中的键一一对应（见 tuning.go）。
type TuningConfig struct {
	// LegacyFile 旧式调优文件路径（可选），加载后覆盖下列字段
	LegacyFile string `json:"legacy_file" yaml:"legacy_file"`

	DefaultMaxPacketSize             uint32  `json:"default_max_packet_size" yaml:"default_max_packet_size"`
	MaxPacketSize                    uint32  `json:"max_packet_size" yaml:"max_packet_size"`
	MtuDiscoveryTargetPacketSizeHigh uint32  `json:"mtu_discovery_target_packet_size_high" yaml:"mtu_discovery_target_packet_size_high"`
	MtuDiscoveryTargetPacketSizeLow  uint32  `json:"mtu_discovery_target_packet_size_low" yaml:"mtu_discovery_target_packet_size_low"`
	DefaultNumConnections            uint32  `json:"default_num_connections" yaml:"default_num_connections"`
	PacingRate                       float64 `json:"pacing_rate" yaml:"pacing_rate"`
	UsingPacing                      bool    `json:"using_pacing" yaml:"using_pacing"`
	Granularity                      uint32  `json:"granularity" yaml:"granularity"`
}

// ============================================================================
//                              迁移跟踪
// ============================================================================

// MigrationConfig 连接迁移跟踪配置
type MigrationConfig struct {
	// CacheSize 最多跟踪的连接数，超出后按 LRU 淘汰
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// MetricsNamespace prometheus 指标命名空间
	MetricsNamespace string `json:"metrics_namespace" yaml:"metrics_namespace"`
}

// ============================================================================
//                              空加密
// ============================================================================

// NullCryptoConfig 空加密配置
type NullCryptoConfig struct {
	// Perspective 本端视角: client 或 server
	Perspective string `json:"perspective" yaml:"perspective"`
}

// ============================================================================
//                              调试转储
// ============================================================================

// DebugConfig 调试转储配置
type DebugConfig struct {
	// ProcessName 转储文件名前缀，为空时使用可执行文件名
	ProcessName string `json:"process_name" yaml:"process_name"`

	// ExperimentSeq 实验序号，写入转储文件名
	ExperimentSeq uint32 `json:"experiment_seq" yaml:"experiment_seq"`

	// DumpDir 转储目录
	DumpDir string `json:"dump_dir" yaml:"dump_dir"`

	// RingSize 日志环形缓冲区字节数，0 表示禁用
	RingSize int `json:"ring_size" yaml:"ring_size"`

	// DumpOnInterrupt 收到中断信号时写出转储
	DumpOnInterrupt bool `json:"dump_on_interrupt" yaml:"dump_on_interrupt"`

	// EnableIntrospect 启用本地自省 HTTP 服务
	EnableIntrospect bool `json:"enable_introspect" yaml:"enable_introspect"`

	// IntrospectAddr 自省服务监听地址
	IntrospectAddr string `json:"introspect_addr" yaml:"introspect_addr"`
}
