package config

// ============================================================================
//                              默认值
// ============================================================================

// 调优默认值
const (
	DefaultMaxPacketSize          = 1350
	DefaultMaxPacketSizeLimit     = 1452
	DefaultMtuDiscoveryTargetHigh = 1450
	DefaultMtuDiscoveryTargetLow  = 1430
	DefaultNumConnections         = 2
	DefaultPacingRate             = 1.25
	DefaultGranularity            = 1
	DefaultMigrationCacheSize     = 4096
	DefaultMetricsNamespace       = "quicutil"
	DefaultRingSize               = 1 << 20
	DefaultDumpDir                = "."
	DefaultNullCryptoPerspective  = "client"
	DefaultIntrospectAddr         = "127.0.0.1:6060"
)

// DefaultLogConfig 默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// DefaultTuningConfig 默认调优参数
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		DefaultMaxPacketSize:             DefaultMaxPacketSize,
		MaxPacketSize:                    DefaultMaxPacketSizeLimit,
		MtuDiscoveryTargetPacketSizeHigh: DefaultMtuDiscoveryTargetHigh,
		MtuDiscoveryTargetPacketSizeLow:  DefaultMtuDiscoveryTargetLow,
		DefaultNumConnections:            DefaultNumConnections,
		PacingRate:                       DefaultPacingRate,
		UsingPacing:                      false,
		Granularity:                      DefaultGranularity,
	}
}

// DefaultMigrationConfig 默认迁移跟踪配置
func DefaultMigrationConfig() MigrationConfig {
	return MigrationConfig{
		CacheSize:        DefaultMigrationCacheSize,
		MetricsNamespace: DefaultMetricsNamespace,
	}
}

// DefaultNullCryptoConfig 默认空加密配置
func DefaultNullCryptoConfig() NullCryptoConfig {
	return NullCryptoConfig{
		Perspective: DefaultNullCryptoPerspective,
	}
}

// DefaultDebugConfig 默认调试配置
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{
		DumpDir:         DefaultDumpDir,
		RingSize:        DefaultRingSize,
		DumpOnInterrupt: true,
		IntrospectAddr:  DefaultIntrospectAddr,
	}
}

// ============================================================================
//                              环境变量
// ============================================================================

// 环境变量前缀和名称常量
const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "QUICUTIL_"

	// EnvLogLevel 日志级别
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogFormat 日志格式
	EnvLogFormat = "LOG_FORMAT"

	// EnvLogFile 日志文件路径
	EnvLogFile = "LOG_FILE"

	// EnvTuningFile 旧式调优文件路径
	EnvTuningFile = "TUNING_FILE"

	// EnvPerspective 空加密视角
	EnvPerspective = "PERSPECTIVE"

	// EnvMigrationCacheSize 迁移跟踪容量
	EnvMigrationCacheSize = "MIGRATION_CACHE_SIZE"

	// EnvDumpDir 转储目录
	EnvDumpDir = "DUMP_DIR"

	// EnvExperimentSeq 实验序号
	EnvExperimentSeq = "EXPERIMENT_SEQ"

	// EnvIntrospectAddr 自省服务地址，设置即启用
	EnvIntrospectAddr = "INTROSPECT_ADDR"
)
