package config

import "go.uber.org/fx"

// Module 返回 config fx 模块
//
// 将调用方构造好的配置注入容器，供各核心模块读取。
func Module(cfg *Config) fx.Option {
	if cfg == nil {
		cfg = NewConfig()
	}
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
