package migration

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
)

// Params Tracker 依赖参数
type Params struct {
	fx.In

	Config     *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 是 migration 的 Fx 模块
var Module = fx.Module("migration",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建 Tracker
func NewFromParams(p Params) (*Tracker, error) {
	cfg := config.DefaultMigrationConfig()
	if p.Config != nil {
		cfg = p.Config.Migration
	}
	return NewTracker(cfg, p.Registerer)
}
