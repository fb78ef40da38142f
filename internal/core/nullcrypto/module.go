package nullcrypto

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
)

// Params 依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// Output 模块输出
type Output struct {
	fx.Out

	Encrypter *Encrypter
	Decrypter *Decrypter
}

// Module 是 nullcrypto 的 Fx 模块
var Module = fx.Module("nullcrypto",
	fx.Provide(NewFromParams),
)

// NewFromParams 按配置中的视角创建收发两端
func NewFromParams(p Params) Output {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	perspective := cfg.Perspective()
	return Output{
		Encrypter: NewEncrypter(perspective),
		Decrypter: NewDecrypter(perspective),
	}
}
