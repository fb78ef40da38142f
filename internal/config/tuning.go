package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// 旧式调优文件中的键
const (
	TuningKeyDefaultMaxPacketSize   = "DefaultMaxPacketSize"
	TuningKeyMaxPacketSize          = "MaxPacketSize"
	TuningKeyMtuDiscoveryTargetHigh = "MtuDiscoveryTargetPacketSizeHigh"
	TuningKeyMtuDiscoveryTargetLow  = "MtuDiscoveryTargetPacketSizeLow"
	TuningKeyDefaultNumConnections  = "DefaultNumConnections"
	TuningKeyPacingRate             = "PacingRate"
	TuningKeyUsingPacing            = "UsingPacing"
	TuningKeyGranularity            = "Granularity"
)

// ParseTuning 解析旧式调优文件并覆盖 t 中对应字段
//
// 文件由若干 "键 值" 对组成，以空白分隔，一行可以有多对。
// 值按浮点数解析后再转换为字段类型；'#' 开头的行为注释。
// 未知键被忽略，返回值为实际生效的键。
func ParseTuning(r io.Reader, t *TuningConfig) ([]string, error) {
	var applied []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields)%2 != 0 {
			return applied, fmt.Errorf("%w: line %d: missing value for %q",
				ErrMalformedTuning, lineNo, fields[len(fields)-1])
		}

		for i := 0; i < len(fields); i += 2 {
			key, raw := fields[i], fields[i+1]
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return applied, fmt.Errorf("%w: line %d: %s=%q is not a number",
					ErrMalformedTuning, lineNo, key, raw)
			}
			if setTuning(t, key, value) {
				applied = append(applied, key)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return applied, fmt.Errorf("read tuning: %w", err)
	}

	return applied, nil
}

// LoadTuningFile 从文件读取旧式调优参数
func LoadTuningFile(path string, t *TuningConfig) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: 用户指定的调优文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("open tuning file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseTuning(f, t)
}

// setTuning 设置单个键，未知键返回 false
func setTuning(t *TuningConfig, key string, value float64) bool {
	switch key {
	case TuningKeyDefaultMaxPacketSize:
		t.DefaultMaxPacketSize = toUint32(value)
	case TuningKeyMaxPacketSize:
		t.MaxPacketSize = toUint32(value)
	case TuningKeyMtuDiscoveryTargetHigh:
		t.MtuDiscoveryTargetPacketSizeHigh = toUint32(value)
	case TuningKeyMtuDiscoveryTargetLow:
		t.MtuDiscoveryTargetPacketSizeLow = toUint32(value)
	case TuningKeyDefaultNumConnections:
		t.DefaultNumConnections = toUint32(value)
	case TuningKeyPacingRate:
		t.PacingRate = value
	case TuningKeyUsingPacing:
		t.UsingPacing = value != 0
	case TuningKeyGranularity:
		t.Granularity = toUint32(value)
	default:
		return false
	}
	return true
}

// toUint32 截断小数部分，负数按 0 处理
func toUint32(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(v)
}

// WriteTuning 以旧式格式写出调优参数，可被 ParseTuning 读回
func WriteTuning(w io.Writer, t TuningConfig) error {
	usingPacing := 0
	if t.UsingPacing {
		usingPacing = 1
	}

	_, err := fmt.Fprintf(w,
		"%s %d\n%s %d\n%s %d\n%s %d\n%s %d\n%s %g\n%s %d\n%s %d\n",
		TuningKeyDefaultMaxPacketSize, t.DefaultMaxPacketSize,
		TuningKeyMaxPacketSize, t.MaxPacketSize,
		TuningKeyMtuDiscoveryTargetHigh, t.MtuDiscoveryTargetPacketSizeHigh,
		TuningKeyMtuDiscoveryTargetLow, t.MtuDiscoveryTargetPacketSizeLow,
		TuningKeyDefaultNumConnections, t.DefaultNumConnections,
		TuningKeyPacingRate, t.PacingRate,
		TuningKeyUsingPacing, usingPacing,
		TuningKeyGranularity, t.Granularity,
	)
	return err
}
