package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quic-go/quic-go"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/util/logger"
	"github.com/dep2p/go-quicutil/pkg/lib/fnv1a"
	"github.com/dep2p/go-quicutil/pkg/lib/pathchange"
	"github.com/dep2p/go-quicutil/pkg/types"
)

// ErrInvalidCacheSize 容量必须为正数
var ErrInvalidCacheSize = errors.New("migration: cache size must be positive")

// Fingerprint 返回连接 ID 的 64 位指纹
func Fingerprint(id quic.ConnectionID) uint64 {
	return fnv1a.Hash64(id.Bytes())
}

// Event 一次地址观察的结果
type Event struct {
	// Fingerprint 连接 ID 指纹
	Fingerprint uint64

	// Previous 之前记录的地址，首次观察时未初始化
	Previous types.SocketAddress

	// Current 本次观察到的地址
	Current types.SocketAddress

	// Change 变化类型
	Change types.AddressChangeType
}

// IsMigration 是否为真正的连接迁移
func (e Event) IsMigration() bool {
	return pathchange.IsMigration(e.Change)
}

// Tracker 对端地址跟踪器
type Tracker struct {
	// mu 保证 读取-判定-写入 的原子性
	mu    sync.Mutex
	cache *lru.Cache[uint64, types.SocketAddress]

	metrics *metrics
	log     *slog.Logger
}

// NewTracker 创建跟踪器
//
// reg 为 nil 时指标只在本地累计，不注册。
func NewTracker(cfg config.MigrationConfig, reg prometheus.Registerer) (*Tracker, error) {
	if cfg.CacheSize <= 0 {
		return nil, ErrInvalidCacheSize
	}

	m, err := newMetrics(cfg.MetricsNamespace, reg)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		metrics: m,
		log:     logger.Logger("migration"),
	}

	cache, err := lru.New[uint64, types.SocketAddress](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create tracker cache: %w", err)
	}
	t.cache = cache

	return t, nil
}

// Observe 记录连接 id 的数据包来自 addr
//
// 首次观察返回 NoChange。addr 未初始化时不更新记录。
func (t *Tracker) Observe(id quic.ConnectionID, addr types.SocketAddress) Event {
	fp := Fingerprint(id)

	t.mu.Lock()
	prev, _ := t.cache.Get(fp)
	change := pathchange.DetermineAddressChangeType(prev, addr)
	evicted := false
	if addr.IsInitialized() && !prev.Equal(addr) {
		evicted = t.cache.Add(fp, addr)
	}
	t.mu.Unlock()

	if evicted {
		t.metrics.evictions.Inc()
		t.log.Debug("跟踪连接被淘汰", "size", t.cache.Len())
	}

	ev := Event{
		Fingerprint: fp,
		Previous:    prev,
		Current:     addr,
		Change:      change,
	}

	if change != types.NoChange {
		t.metrics.changes.WithLabelValues(change.String()).Inc()
		if ev.IsMigration() {
			t.log.Info("对端连接迁移",
				"conn", id, "from", prev, "to", addr, "type", change)
		} else {
			t.log.Debug("对端地址重绑定",
				"conn", id, "from", prev, "to", addr, "type", change)
		}
	}

	return ev
}

// ObserveNetAddr 与 Observe 相同，地址取自 net.Addr（例如 UDP 包的来源地址）
func (t *Tracker) ObserveNetAddr(id quic.ConnectionID, addr net.Addr) (Event, error) {
	sa, err := types.SocketAddressFromNetAddr(addr)
	if err != nil {
		return Event{}, err
	}
	return t.Observe(id, sa), nil
}

// Lookup 返回连接当前记录的地址
func (t *Tracker) Lookup(id quic.ConnectionID) (types.SocketAddress, bool) {
	return t.cache.Peek(Fingerprint(id))
}

// Forget 移除连接记录（连接关闭时调用）
func (t *Tracker) Forget(id quic.ConnectionID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cache.Remove(Fingerprint(id))
}

// Len 当前跟踪的连接数
func (t *Tracker) Len() int {
	return t.cache.Len()
}
