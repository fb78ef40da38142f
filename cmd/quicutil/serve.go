package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dep2p/go-quicutil"
	"github.com/dep2p/go-quicutil/internal/config"
)

// runServe quicutil serve [-introspect addr]
//
// 启动运行时并等待信号。SIGINT 且 debug.dump_on_interrupt 开启时，
// 退出前把日志环形缓冲区写出到转储文件。
func runServe(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	introspectAddr := fs.String("introspect", "", "启用自省服务并监听该地址")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := []quicutil.Option{quicutil.WithConfig(cfg)}
	if *introspectAddr != "" {
		opts = append(opts, quicutil.WithIntrospect(*introspectAddr))
	}

	rt, err := quicutil.New(opts...)
	if err != nil {
		return err
	}
	if err := rt.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	fmt.Fprintln(out, quicutil.VersionInfo())
	if addr := rt.IntrospectAddr(); addr != "" {
		fmt.Fprintf(out, "自省服务: http://%s/debug/introspect\n", addr)
	}
	fmt.Fprintln(out, "运行中，按 Ctrl+C 退出")

	sig := waitForSignal(ctx)
	log.Info("收到退出信号", "signal", sig)

	if sig == os.Interrupt && cfg.Debug.DumpOnInterrupt {
		path, err := rt.Dump()
		switch {
		case errors.Is(err, quicutil.ErrDumpDisabled):
			log.Warn("环形缓冲区未启用，跳过转储")
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "调试转储已写出: %s\n", path)
		}
	}
	return nil
}

// waitForSignal 等待退出信号，ctx 结束时返回 nil
func waitForSignal(ctx context.Context) os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case s := <-signals:
		return s
	case <-ctx.Done():
		return nil
	}
}
