package dump

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

// Params 依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// Module 是 dump 的 Fx 模块
//
// 提供 Ring 与 Dumper，运行期间把全局日志输出复制一份到 Ring。
var Module = fx.Module("dump",
	fx.Provide(
		NewRingFromParams,
		NewDumperFromParams,
	),
	fx.Invoke(registerLifecycle),
)

// NewRingFromParams 按 debug.ring_size 创建环形缓冲区
func NewRingFromParams(p Params) *Ring {
	size := config.DefaultRingSize
	if p.Config != nil {
		size = p.Config.Debug.RingSize
	}
	return NewRing(size)
}

// NewDumperFromParams 创建 Dumper
func NewDumperFromParams(ring *Ring, p Params) *Dumper {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return NewDumper(ring, cfg)
}

// registerLifecycle 注册日志复制钩子
func registerLifecycle(lc fx.Lifecycle, ring *Ring) {
	if ring.Cap() == 0 {
		return // 禁用
	}

	var remove func()
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			remove = logger.AddTee(ring)
			return nil
		},
		OnStop: func(_ context.Context) error {
			if remove != nil {
				remove()
			}
			return nil
		},
	})
}
