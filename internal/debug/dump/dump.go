package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

var log = logger.Logger("dump")

// FileName 生成转储文件名
//
// 格式: <进程名>-MMDD-SS-HHMM-NumCon_x-PacingRate_x-UsingPacing_x-Gra_x-DMPS_x-MPS_x-MDTPSH_x-MDTPSL_x.txt
// 其中 SS 为实验序号，进程名取路径最后一段。
func FileName(process string, seq uint32, t config.TuningConfig, now time.Time) string {
	usingPacing := 0
	if t.UsingPacing {
		usingPacing = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s-%02d%02d-%02d-%02d%02d",
		filepath.Base(process), int(now.Month()), now.Day(), seq, now.Hour(), now.Minute())
	fmt.Fprintf(&b, "-NumCon_%d", t.DefaultNumConnections)
	b.WriteString("-PacingRate_" + strconv.FormatFloat(t.PacingRate, 'g', 6, 64))
	fmt.Fprintf(&b, "-UsingPacing_%d", usingPacing)
	fmt.Fprintf(&b, "-Gra_%d", t.Granularity)
	fmt.Fprintf(&b, "-DMPS_%d", t.DefaultMaxPacketSize)
	fmt.Fprintf(&b, "-MPS_%d", t.MaxPacketSize)
	fmt.Fprintf(&b, "-MDTPSH_%d", t.MtuDiscoveryTargetPacketSizeHigh)
	fmt.Fprintf(&b, "-MDTPSL_%d", t.MtuDiscoveryTargetPacketSizeLow)
	b.WriteString(".txt")
	return b.String()
}

// Dumper 将环形缓冲区内容写出到文件
type Dumper struct {
	ring    *Ring
	debug   config.DebugConfig
	tuning  config.TuningConfig
	process string
	clock   clock.Clock
}

// NewDumper 创建 Dumper
//
// cfg.Debug.ProcessName 为空时使用 os.Args[0]。
func NewDumper(ring *Ring, cfg *config.Config) *Dumper {
	process := cfg.Debug.ProcessName
	if process == "" && len(os.Args) > 0 {
		process = os.Args[0]
	}
	return &Dumper{
		ring:    ring,
		debug:   cfg.Debug,
		tuning:  cfg.Tuning,
		process: process,
		clock:   clock.New(),
	}
}

// Ring 返回底层缓冲区
func (d *Dumper) Ring() *Ring {
	return d.ring
}

// Dump 写出当前缓冲区内容，返回文件路径
//
// 内容末尾追加换行。
func (d *Dumper) Dump() (string, error) {
	name := FileName(d.process, d.debug.ExperimentSeq, d.tuning, d.clock.Now())
	path := filepath.Join(d.debug.DumpDir, name)

	data := append(d.ring.Bytes(), '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: 调试转储需要可读
		log.Error("写出转储失败", "path", path, "error", err)
		return "", fmt.Errorf("write dump: %w", err)
	}

	log.Info("调试缓冲区已转储", "path", path, "bytes", len(data), "total_written", d.ring.Total())
	return path, nil
}
