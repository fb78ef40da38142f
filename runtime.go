package quicutil

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quic-go/quic-go"
	"go.uber.org/fx"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/core/migration"
	"github.com/dep2p/go-quicutil/internal/core/nullcrypto"
	"github.com/dep2p/go-quicutil/internal/debug/dump"
	"github.com/dep2p/go-quicutil/internal/debug/introspect"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

var log = logger.Logger("quicutil")

const (
	// startTimeout 启动超时（Fx App Start）
	startTimeout = 15 * time.Second

	// stopTimeout 关闭超时
	stopTimeout = 5 * time.Second
)

// Runtime 组装后的工具运行时
//
// 持有空加密两端、迁移跟踪器、调试缓冲区以及可选的自省服务。
type Runtime struct {
	mu      sync.Mutex
	app     *fx.App
	started bool
	closed  bool

	config   *config.Config
	registry *prometheus.Registry

	encrypter *nullcrypto.Encrypter
	decrypter *nullcrypto.Decrypter
	tracker   *migration.Tracker
	dumper    *dump.Dumper
	server    *introspect.Server
}

// New 创建运行时（不启动）
func New(opts ...Option) (*Runtime, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, err
	}
	logger.SetConfig(cfg.Log.LoggerConfig())

	reg := o.registry
	if reg == nil {
		reg = newRegistry()
	}

	rt := &Runtime{
		config:   cfg,
		registry: reg,
	}
	rt.app = buildFxApp(cfg, o, rt)
	if err := rt.app.Err(); err != nil {
		return nil, fmt.Errorf("build runtime: %w", err)
	}
	return rt, nil
}

// Start 启动全部组件
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.started {
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := r.app.Start(startCtx); err != nil {
		log.Error("运行时启动失败", "error", err)
		return fmt.Errorf("start runtime: %w", err)
	}

	r.started = true
	log.Info("运行时已启动",
		"perspective", r.encrypter.Perspective(),
		"migration_cache", r.config.Migration.CacheSize,
		"introspect", r.server != nil)
	return nil
}

// Close 停止全部组件，可重复调用
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if !r.started {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := r.app.Stop(ctx); err != nil {
		log.Error("运行时停止失败", "error", err)
		return fmt.Errorf("stop runtime: %w", err)
	}
	log.Info("运行时已停止")
	return nil
}

// Config 返回生效的配置
func (r *Runtime) Config() *config.Config {
	return r.config
}

// Registry 返回指标注册表
func (r *Runtime) Registry() *prometheus.Registry {
	return r.registry
}

// Encrypter 返回本端空加密器
func (r *Runtime) Encrypter() *nullcrypto.Encrypter {
	return r.encrypter
}

// Decrypter 返回本端空解密器
func (r *Runtime) Decrypter() *nullcrypto.Decrypter {
	return r.decrypter
}

// Tracker 返回迁移跟踪器
func (r *Runtime) Tracker() *migration.Tracker {
	return r.tracker
}

// Seal 使用本端视角生成带 12 字节完整性标签的包
func (r *Runtime) Seal(dst, associatedData, plaintext []byte) ([]byte, error) {
	if err := r.checkStarted(); err != nil {
		return nil, err
	}
	return r.encrypter.Seal(dst, associatedData, plaintext), nil
}

// Open 校验对端发来的包并返回明文
func (r *Runtime) Open(dst, associatedData, ciphertext []byte) ([]byte, error) {
	if err := r.checkStarted(); err != nil {
		return nil, err
	}
	return r.decrypter.Open(dst, associatedData, ciphertext)
}

// ObservePeer 记录连接的对端地址并返回变化分类
func (r *Runtime) ObservePeer(id quic.ConnectionID, addr net.Addr) (migration.Event, error) {
	if err := r.checkStarted(); err != nil {
		return migration.Event{}, err
	}
	return r.tracker.ObserveNetAddr(id, addr)
}

// ForgetPeer 移除连接记录，返回记录是否存在
func (r *Runtime) ForgetPeer(id quic.ConnectionID) (bool, error) {
	if err := r.checkStarted(); err != nil {
		return false, err
	}
	return r.tracker.Forget(id), nil
}

// Dump 立即写出调试缓冲区
func (r *Runtime) Dump() (string, error) {
	if err := r.checkStarted(); err != nil {
		return "", err
	}
	if r.dumper.Ring().Cap() == 0 {
		return "", ErrDumpDisabled
	}
	return r.dumper.Dump()
}

// IntrospectAddr 返回自省服务地址，未启用时为空
func (r *Runtime) IntrospectAddr() string {
	if r.server == nil {
		return ""
	}
	return r.server.Addr()
}

func (r *Runtime) checkStarted() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if !r.started {
		return ErrNotStarted
	}
	return nil
}
