// Package dump 提供调试日志的内存保留与落盘
//
// Ring 作为额外的日志输出目标，只保留最近写入的若干字节；
// 进程收到中断信号时由 Dumper 写出到按实验参数命名的文件中。
package dump

import "sync"

// Ring 固定容量的字节环形缓冲区
//
// 写满后覆盖最早的数据。并发安全，Write 永不返回错误。
type Ring struct {
	mu    sync.Mutex
	buf   []byte
	start int
	size  int
	total uint64
}

// NewRing 创建容量为 capacity 字节的环形缓冲区
func NewRing(capacity int) *Ring {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring{buf: make([]byte, capacity)}
}

// Write 实现 io.Writer
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p)
	r.total += uint64(n)

	capacity := len(r.buf)
	if capacity == 0 {
		return n, nil
	}

	// 只有最后 capacity 字节有意义
	if len(p) >= capacity {
		copy(r.buf, p[len(p)-capacity:])
		r.start = 0
		r.size = capacity
		return n, nil
	}

	end := (r.start + r.size) % capacity
	copied := copy(r.buf[end:], p)
	copy(r.buf, p[copied:])

	r.size += len(p)
	if r.size > capacity {
		r.start = (r.start + r.size - capacity) % capacity
		r.size = capacity
	}
	return n, nil
}

// Bytes 按写入顺序返回当前保留内容的副本
func (r *Ring) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, r.size)
	n := copy(out, r.buf[r.start:min(r.start+r.size, len(r.buf))])
	copy(out[n:], r.buf[:r.size-n])
	return out
}

// Len 当前保留的字节数
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap 容量
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Total 累计写入的字节数（含已被覆盖的部分）
func (r *Ring) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Reset 清空缓冲区
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start, r.size = 0, 0
}
