package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/dep2p/go-quicutil/internal/util/logger"
	"github.com/dep2p/go-quicutil/pkg/types"
)

// ValidationError 配置校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

// ValidationErrors 多个配置校验错误
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for i := range e {
		msgs = append(msgs, e[i].Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors 是否有错误
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator 配置校验器
type Validator struct {
	errors ValidationErrors
}

// NewValidator 创建校验器
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// addError 添加错误
func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Errors 返回所有错误
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

// Validate 校验配置
func Validate(config *Config) error {
	v := NewValidator()

	v.validateLog(&config.Log)
	v.validateTuning(&config.Tuning)
	v.validateMigration(&config.Migration)
	v.validateNullCrypto(&config.NullCrypto)
	v.validateDebug(&config.Debug)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

// validateLog 校验日志配置
func (v *Validator) validateLog(cfg *LogConfig) {
	switch strings.ToLower(cfg.Format) {
	case "", "text", "json":
	default:
		v.addError("log.format", "must be text or json")
	}

	for _, part := range strings.Split(cfg.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, name, found := strings.Cut(part, "="); found {
			part = strings.TrimSpace(name)
		}
		if _, ok := logger.ParseLevel(part); !ok {
			v.addError("log.level", fmt.Sprintf("unknown level %q", part))
		}
	}
}

// validateTuning 校验调优参数
func (v *Validator) validateTuning(cfg *TuningConfig) {
	if cfg.MaxPacketSize > 0 && cfg.DefaultMaxPacketSize > cfg.MaxPacketSize {
		v.addError("tuning.default_max_packet_size", "must not exceed max_packet_size")
	}

	if cfg.MtuDiscoveryTargetPacketSizeLow > cfg.MtuDiscoveryTargetPacketSizeHigh {
		v.addError("tuning.mtu_discovery_target_packet_size_low", "must not exceed the high target")
	}

	if cfg.PacingRate < 0 {
		v.addError("tuning.pacing_rate", "must not be negative")
	}
}

// validateMigration 校验迁移跟踪配置
func (v *Validator) validateMigration(cfg *MigrationConfig) {
	if cfg.CacheSize <= 0 {
		v.addError("migration.cache_size", "must be positive")
	}
}

// validateNullCrypto 校验空加密配置
func (v *Validator) validateNullCrypto(cfg *NullCryptoConfig) {
	if _, ok := types.ParsePerspective(cfg.Perspective); !ok {
		v.addError("null_crypto.perspective", "must be client or server")
	}
}

// validateDebug 校验调试配置
func (v *Validator) validateDebug(cfg *DebugConfig) {
	if cfg.RingSize < 0 {
		v.addError("debug.ring_size", "must not be negative")
	}
	if cfg.DumpOnInterrupt && cfg.DumpDir == "" {
		v.addError("debug.dump_dir", "required when dump_on_interrupt is enabled")
	}
	if cfg.EnableIntrospect {
		if _, _, err := net.SplitHostPort(cfg.IntrospectAddr); err != nil {
			v.addError("debug.introspect_addr", "must be host:port")
		}
	}
}

// Perspective 返回解析后的空加密视角
//
// 配置已通过校验时总能成功；否则回落为客户端。
func (c *Config) Perspective() types.Perspective {
	p, _ := types.ParsePerspective(c.NullCrypto.Perspective)
	return p
}
