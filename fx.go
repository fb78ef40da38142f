package quicutil

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/core/migration"
	"github.com/dep2p/go-quicutil/internal/core/nullcrypto"
	"github.com/dep2p/go-quicutil/internal/debug/dump"
	"github.com/dep2p/go-quicutil/internal/debug/introspect"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

var fxLogger = logger.Logger("fx")

// Module 组装全部内部模块
//
// 加载顺序（按依赖）：
//  1. 配置与指标注册表
//  2. 调试缓冲区（尽早接管日志输出）
//  3. 空加密、迁移跟踪
//  4. 自省服务（按配置）
//
// reg 为 nil 时创建带运行时采集器的新注册表。
func Module(cfg *config.Config, reg *prometheus.Registry) fx.Option {
	if reg == nil {
		reg = newRegistry()
	}

	modules := []fx.Option{
		config.Module(cfg),
		fx.Supply(reg),
		fx.Provide(
			func(r *prometheus.Registry) prometheus.Registerer { return r },
			func(r *prometheus.Registry) prometheus.Gatherer { return r },
		),

		dump.Module,
		nullcrypto.Module,
		migration.Module,
	}

	if cfg != nil && cfg.Debug.EnableIntrospect {
		modules = append(modules, introspect.Module())
	}

	return fx.Options(modules...)
}

// newRegistry 创建带运行时采集器的注册表
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// runtimeParams 注入到 Runtime 的组件
type runtimeParams struct {
	fx.In

	Encrypter *nullcrypto.Encrypter
	Decrypter *nullcrypto.Decrypter
	Tracker   *migration.Tracker
	Dumper    *dump.Dumper
	Server    *introspect.Server `optional:"true"`
}

// buildFxApp 构建 Fx 应用
func buildFxApp(cfg *config.Config, o *options, rt *Runtime) *fx.App {
	modules := []fx.Option{
		Module(cfg, rt.registry),
	}

	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	modules = append(modules, fx.Invoke(func(p runtimeParams) {
		rt.encrypter = p.Encrypter
		rt.decrypter = p.Decrypter
		rt.tracker = p.Tracker
		rt.dumper = p.Dumper
		rt.server = p.Server
	}))

	if o.fxEventLogs {
		modules = append(modules, fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: fxLogger}
		}))
	} else {
		modules = append(modules, fx.NopLogger)
	}

	return fx.New(modules...)
}
