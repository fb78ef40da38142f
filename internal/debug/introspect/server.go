package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-quicutil/internal/debug/dump"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

var log = logger.Logger("introspect")

// DefaultAddr 默认监听地址
const DefaultAddr = "127.0.0.1:6060"

// ============================================================================
//                              配置
// ============================================================================

// Config 服务配置
type Config struct {
	// Addr 监听地址，默认 "127.0.0.1:6060"
	Addr string

	// Gatherer 可选的指标来源，为空时不注册 /metrics
	Gatherer prometheus.Gatherer

	// Dumper 可选的转储器，为空时 /debug/log 与 /debug/dump 返回 503
	Dumper *dump.Dumper

	// Tracker 可选的迁移跟踪统计
	Tracker TrackerStats
}

// TrackerStats 迁移跟踪器统计接口
type TrackerStats interface {
	Len() int
}

// ============================================================================
//                              Server
// ============================================================================

// Server 本地调试 HTTP 服务
type Server struct {
	config Config

	server   *http.Server
	listener net.Listener

	running   bool
	startTime time.Time

	mu sync.Mutex
}

// New 创建服务
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler 返回服务路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/introspect", s.handleIntrospect)
	mux.HandleFunc("/debug/introspect/runtime", s.handleRuntime)
	mux.HandleFunc("/debug/log", s.handleLog)
	mux.HandleFunc("/debug/dump", s.handleDump)

	if s.config.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("自省服务异常退出", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	log.Info("自省服务已启动", "addr", listener.Addr().String())
	return nil
}

// Stop 停止服务
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Error("关闭自省服务失败", "error", err)
		return err
	}

	s.running = false
	log.Info("自省服务已停止")
	return nil
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// ============================================================================
//                              响应结构
// ============================================================================

// IntrospectResponse 诊断汇总
type IntrospectResponse struct {
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Migration *TrackerInfo `json:"migration,omitempty"`
	Log       *LogInfo     `json:"log,omitempty"`
	Runtime   *RuntimeInfo `json:"runtime"`
}

// TrackerInfo 迁移跟踪信息
type TrackerInfo struct {
	TrackedConnections int `json:"tracked_connections"`
}

// LogInfo 日志缓冲区信息
type LogInfo struct {
	Buffered     int    `json:"buffered"`
	Capacity     int    `json:"capacity"`
	TotalWritten uint64 `json:"total_written"`
}

// RuntimeInfo 运行时信息
type RuntimeInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime,omitempty"`
}

// DumpResponse 转储结果
type DumpResponse struct {
	Path string `json:"path"`
}

// ============================================================================
//                              HTTP 处理器
// ============================================================================

func (s *Server) handleIntrospect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := IntrospectResponse{
		Timestamp: time.Now(),
		Uptime:    s.uptime(),
		Runtime:   collectRuntimeInfo(),
	}
	if s.config.Tracker != nil {
		resp.Migration = &TrackerInfo{TrackedConnections: s.config.Tracker.Len()}
	}
	if s.config.Dumper != nil {
		ring := s.config.Dumper.Ring()
		resp.Log = &LogInfo{
			Buffered:     ring.Len(),
			Capacity:     ring.Cap(),
			TotalWritten: ring.Total(),
		}
	}

	writeJSON(w, resp)
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, collectRuntimeInfo())
}

// handleLog GET 返回环形缓冲区的原始内容，DELETE 清空缓冲区
func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.config.Dumper == nil {
		http.Error(w, "Log buffer not available", http.StatusServiceUnavailable)
		return
	}

	ring := s.config.Dumper.Ring()
	if r.Method == http.MethodDelete {
		ring.Reset()
		log.Debug("日志缓冲区已清空", "total_written", ring.Total())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(ring.Bytes())
}

// handleDump 立即写出转储文件
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.config.Dumper == nil {
		http.Error(w, "Dump not available", http.StatusServiceUnavailable)
		return
	}

	path, err := s.config.Dumper.Dump()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, DumpResponse{Path: path})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Uptime:    s.uptime(),
	})
}

// ============================================================================
//                              辅助方法
// ============================================================================

func (s *Server) uptime() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startTime).Round(time.Millisecond).String()
}

func collectRuntimeInfo() *RuntimeInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &RuntimeInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

// writeJSON 写入 JSON 响应
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		log.Error("JSON 编码失败", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
