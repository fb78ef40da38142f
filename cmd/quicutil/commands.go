package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/dep2p/go-quicutil/internal/config"
	"github.com/dep2p/go-quicutil/internal/core/nullcrypto"
	"github.com/dep2p/go-quicutil/pkg/lib/fnv1a"
	"github.com/dep2p/go-quicutil/pkg/lib/pathchange"
	"github.com/dep2p/go-quicutil/pkg/types"
)

// decodeInputs 按 -hex 开关把参数解释为原始字节
func decodeInputs(args []string, isHex bool) ([][]byte, error) {
	out := make([][]byte, len(args))
	for i, a := range args {
		if !isHex {
			out[i] = []byte(a)
			continue
		}
		b, err := hex.DecodeString(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = b
	}
	return out, nil
}

func newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	isHex := fs.Bool("hex", false, "参数为十六进制字节")
	return fs, isHex
}

// runHash64 quicutil hash64 [-hex] <data>
func runHash64(_ context.Context, _ *config.Config, args []string, out io.Writer) error {
	fs, isHex := newFlagSet("hash64")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: hash64 takes exactly one argument", errUsage)
	}

	data, err := decodeInputs(fs.Args(), *isHex)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%016x\n", fnv1a.Hash64(data[0]))
	return nil
}

// runHash128 quicutil hash128 [-hex] <d1> [d2] [d3]
//
// 输出完整 128 位值与 12 字节短序列化。
func runHash128(_ context.Context, _ *config.Config, args []string, out io.Writer) error {
	fs, isHex := newFlagSet("hash128")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() < 1 || fs.NArg() > 3 {
		return fmt.Errorf("%w: hash128 takes one to three arguments", errUsage)
	}

	data, err := decodeInputs(fs.Args(), *isHex)
	if err != nil {
		return err
	}
	for len(data) < 3 {
		data = append(data, nil)
	}

	h := fnv1a.Hash128Three(data[0], data[1], data[2])
	short := fnv1a.SerializeUint128Short(h)
	fmt.Fprintf(out, "hash128 %s\n", h)
	fmt.Fprintf(out, "short   %s\n", hex.EncodeToString(short[:]))
	return nil
}

// runClassify quicutil classify <old ip:port> <new ip:port>
func runClassify(_ context.Context, _ *config.Config, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: classify takes <old> <new>", errUsage)
	}

	addrs := make([]types.SocketAddress, 2)
	for i, a := range args {
		if a == "-" {
			continue // 未初始化
		}
		sa, err := types.ParseSocketAddress(a)
		if err != nil {
			return err
		}
		addrs[i] = sa
	}

	change := pathchange.DetermineAddressChangeType(addrs[0], addrs[1])
	fmt.Fprintln(out, change)
	return nil
}

// perspectiveFlag 默认取配置中的视角
func perspectiveFlag(fs *flag.FlagSet, cfg *config.Config) *string {
	return fs.String("perspective", cfg.NullCrypto.Perspective, "本端视角 (client/server)")
}

func parsePerspective(s string) (types.Perspective, error) {
	p, ok := types.ParsePerspective(s)
	if !ok {
		return p, fmt.Errorf("%w: invalid perspective %q", errUsage, s)
	}
	return p, nil
}

// runSeal quicutil seal [-hex] [-perspective p] <associated-data> <plaintext>
func runSeal(_ context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs, isHex := newFlagSet("seal")
	p := perspectiveFlag(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: seal takes <associated-data> <plaintext>", errUsage)
	}

	perspective, err := parsePerspective(*p)
	if err != nil {
		return err
	}
	data, err := decodeInputs(fs.Args(), *isHex)
	if err != nil {
		return err
	}

	sealed := nullcrypto.NewEncrypter(perspective).Seal(nil, data[0], data[1])
	fmt.Fprintln(out, hex.EncodeToString(sealed))
	return nil
}

// runOpen quicutil open [-hex] [-perspective p] <associated-data> <sealed-hex>
//
// 明文以十六进制输出。
func runOpen(_ context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs, isHex := newFlagSet("open")
	p := perspectiveFlag(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: open takes <associated-data> <sealed-hex>", errUsage)
	}

	perspective, err := parsePerspective(*p)
	if err != nil {
		return err
	}
	ad, err := decodeInputs(fs.Args()[:1], *isHex)
	if err != nil {
		return err
	}
	sealed, err := hex.DecodeString(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("sealed packet: %w", err)
	}

	plaintext, err := nullcrypto.NewDecrypter(perspective).Open(nil, ad[0], sealed)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hex.EncodeToString(plaintext))
	return nil
}

// runTuning quicutil tuning [-file path]
//
// 指定 -file 时先合并该文件，再输出结果。
func runTuning(_ context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tuning", flag.ContinueOnError)
	file := fs.String("file", "", "旧式调优文件")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	tuning := cfg.Tuning
	if *file != "" {
		if _, err := config.LoadTuningFile(*file, &tuning); err != nil {
			return err
		}
	}
	return config.WriteTuning(out, tuning)
}
