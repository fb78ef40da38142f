// Package main 提供 quicutil 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dep2p/go-quicutil"
	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/util/logger"
)

var log = logger.Logger("cmd")

// errUsage 参数错误，打印用法后以状态码 2 退出
var errUsage = errors.New("usage error")

// ═══════════════════════════════════════════════════════════════════════════
// 全局参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径（.json / .yaml）")
	logFile     = flag.String("log", "", "日志文件路径（覆盖配置）")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

// command 子命令
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error
}

var commands = []command{
	{"hash64", "计算 FNV-1a 64 位哈希", runHash64},
	{"hash128", "计算 FNV-1a 128 位哈希（1-3 段输入）及 12 字节短序列化", runHash128},
	{"classify", "判定两个端点地址之间的变化类型", runClassify},
	{"seal", "生成带空加密标签的包（十六进制输出）", runSeal},
	{"open", "校验并解开空加密包", runOpen},
	{"tuning", "以旧式 key value 格式输出当前调优参数", runTuning},
	{"serve", "启动运行时，收到中断信号时写出调试转储", runServe},
}

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *showVersion {
		fmt.Println(quicutil.VersionInfo())
		return
	}

	if err := run(flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "错误: %v\n\n", err)
			printHelp()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	name, rest := args[0], args[1:]
	for _, c := range commands {
		if c.name == name {
			log.Debug("执行子命令", "command", name, "args", len(rest))
			return c.run(context.Background(), cfg, rest, out)
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, name)
}

// setupLogging 应用日志配置，File 非空时输出到文件
func setupLogging(cfg config.LogConfig) (func(), error) {
	logger.SetConfig(cfg.LoggerConfig())

	if cfg.File == "" {
		return func() {}, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	logger.SetOutput(file)

	return func() {
		logger.SetOutput(os.Stderr)
		_ = file.Close()
	}, nil
}

// printHelp 打印帮助信息
func printHelp() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "quicutil - QUIC 哈希、地址变化分类与空加密工具")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "用法:")
	fmt.Fprintln(w, "  quicutil [全局选项] <命令> [参数]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "命令:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "全局选项:")
	flag.PrintDefaults()
}
