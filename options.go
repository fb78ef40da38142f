package quicutil

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config     *config.Config
	configFile string

	// 逐项覆盖，在配置文件之后应用
	overrides []func(*config.Config)

	registry      *prometheus.Registry
	fxEventLogs   bool
	userFxOptions []fx.Option
}

// WithConfig 使用已构造的配置
//
// 与 WithConfigFile 互斥。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config must not be nil")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从 JSON/YAML 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configFile = path
		return nil
	}
}

// WithPerspective 设置空加密视角
func WithPerspective(p types.Perspective) Option {
	return func(o *options) error {
		switch p {
		case types.PerspectiveClient, types.PerspectiveServer:
		default:
			return fmt.Errorf("invalid perspective: %d", p)
		}
		o.overrides = append(o.overrides, func(c *config.Config) {
			c.NullCrypto.Perspective = p.String()
		})
		return nil
	}
}

// WithMigrationCacheSize 设置迁移跟踪的最大连接数
func WithMigrationCacheSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("migration cache size must be positive: %d", n)
		}
		o.overrides = append(o.overrides, func(c *config.Config) {
			c.Migration.CacheSize = n
		})
		return nil
	}
}

// WithIntrospect 启用本地自省服务
func WithIntrospect(addr string) Option {
	return func(o *options) error {
		o.overrides = append(o.overrides, func(c *config.Config) {
			c.Debug.EnableIntrospect = true
			if addr != "" {
				c.Debug.IntrospectAddr = addr
			}
		})
		return nil
	}
}

// WithDumpDir 设置调试转储目录
func WithDumpDir(dir string) Option {
	return func(o *options) error {
		o.overrides = append(o.overrides, func(c *config.Config) {
			c.Debug.DumpDir = dir
		})
		return nil
	}
}

// WithRegistry 使用调用方的 Prometheus 注册表
//
// 未设置时创建独立注册表，并注册 Go 运行时与进程采集器。
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) error {
		o.registry = reg
		return nil
	}
}

// WithFxEventLogs 将 Fx 容器事件输出到 "fx" 子系统日志
func WithFxEventLogs() Option {
	return func(o *options) error {
		o.fxEventLogs = true
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}

// resolveConfig 按 默认值/文件 → 逐项覆盖 → 校验 的顺序生成配置
func (o *options) resolveConfig() (*config.Config, error) {
	if o.config != nil && o.configFile != "" {
		return nil, errors.New("WithConfig and WithConfigFile are mutually exclusive")
	}

	cfg := o.config
	if cfg == nil {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	for _, apply := range o.overrides {
		apply(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
