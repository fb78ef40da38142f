package config

import "github.com/dep2p/go-quicutil/internal/util/logger"

// LoggerConfig 转换为 logger 包的配置
//
// 以环境变量解析结果为基础，Level 与 Format 非空时覆盖。
func (c LogConfig) LoggerConfig() *logger.Config {
	lc := logger.ConfigFromEnv()
	if c.Level != "" {
		logger.ApplyLevelSpec(lc, c.Level)
	}
	if c.Format != "" {
		lc.Format = logger.ParseFormat(c.Format)
	}
	return lc
}
