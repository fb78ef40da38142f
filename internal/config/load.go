package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load 按 默认值 → 配置文件 → 环境变量 → 旧式调优文件 的顺序构建配置并校验
//
// path 为空时跳过配置文件。
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()

	if cfg.Tuning.LegacyFile != "" {
		if _, err := LoadTuningFile(cfg.Tuning.LegacyFile, &cfg.Tuning); err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile 从 JSON 或 YAML 文件加载配置，覆盖文件中出现的字段
//
// 按扩展名选择格式：.yaml / .yml 使用 YAML，.json 或无扩展名使用 JSON。
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".json", "":
		err = json.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv 应用 QUICUTIL_ 前缀的环境变量覆盖
//
// 无法解析的数值被忽略。
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPrefix + EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvPrefix + EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvPrefix + EnvTuningFile); v != "" {
		c.Tuning.LegacyFile = v
	}
	if v := os.Getenv(EnvPrefix + EnvPerspective); v != "" {
		c.NullCrypto.Perspective = v
	}
	if v := os.Getenv(EnvPrefix + EnvMigrationCacheSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Migration.CacheSize = n
		}
	}
	if v := os.Getenv(EnvPrefix + EnvDumpDir); v != "" {
		c.Debug.DumpDir = v
	}
	if v := os.Getenv(EnvPrefix + EnvExperimentSeq); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Debug.ExperimentSeq = uint32(n)
		}
	}
	if v := os.Getenv(EnvPrefix + EnvIntrospectAddr); v != "" {
		c.Debug.IntrospectAddr = v
		c.Debug.EnableIntrospect = true
	}
}
