package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	ResetConfig()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		ResetConfig()
	})
	return buf
}

func TestSetOutput(t *testing.T) {
	buf := withBuffer(t)

	log := Logger("test")
	log.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "subsystem=test")
	assert.Contains(t, output, "level=info")
}

func TestSetOutput_ExistingLogger(t *testing.T) {
	ResetConfig()
	log := Logger("test2")

	buf := withBuffer(t)
	log.Info("after switch", "key", "value")

	assert.Contains(t, buf.String(), "after switch")
}

func TestOutput_ReturnsCurrent(t *testing.T) {
	buf := withBuffer(t)
	assert.Same(t, buf, Output())
}

func TestAddTee_RemoveInAnyOrder(t *testing.T) {
	buf := withBuffer(t)
	a, b := &bytes.Buffer{}, &bytes.Buffer{}

	removeA := AddTee(a)
	removeB := AddTee(b)
	log := Logger("tee")

	log.Info("both")
	assert.Contains(t, a.String(), "both")
	assert.Contains(t, b.String(), "both")

	// 先注销先注册的目标
	removeA()
	log.Info("only b")
	assert.NotContains(t, a.String(), "only b")
	assert.Contains(t, b.String(), "only b")

	removeB()
	removeB()
	lenA, lenB := a.Len(), b.Len()
	log.Info("neither")
	assert.Equal(t, lenA, a.Len())
	assert.Equal(t, lenB, b.Len())

	assert.Same(t, buf, Output())
	assert.Contains(t, buf.String(), "neither")
}

func TestAddTee_SameWriterTwice(t *testing.T) {
	withBuffer(t)
	w := &bytes.Buffer{}

	remove1 := AddTee(w)
	remove2 := AddTee(w)
	remove1()

	Logger("tee-twice").Info("once")
	assert.Equal(t, 1, strings.Count(w.String(), "once"))
	remove2()
}

func TestLogger_Cached(t *testing.T) {
	withBuffer(t)
	assert.Same(t, Logger("same"), Logger("same"))
}

func TestSetLevel_AffectsChildLoggers(t *testing.T) {
	buf := withBuffer(t)

	child := Logger("levels").With("conn", "abc")
	child.Debug("hidden")
	assert.Empty(t, buf.String())

	SetLevel("levels", slog.LevelDebug)
	child.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "conn=abc")
}

func TestApplyLevelSpec(t *testing.T) {
	cfg := DefaultConfig()
	ApplyLevelSpec(cfg, "migration=debug, nullcrypto=warn ,error,bogus=loud")

	assert.Equal(t, slog.LevelError, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("migration"))
	assert.Equal(t, slog.LevelWarn, cfg.LevelForSubsystem("nullcrypto"))
	assert.Equal(t, slog.LevelError, cfg.LevelForSubsystem("other"))
	_, ok := cfg.SubsystemLevels["bogus"]
	assert.False(t, ok)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "migration=debug,warn")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogAddSource, "0")

	cfg := ConfigFromEnv()
	assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("migration"))
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.False(t, cfg.AddSource)
}

func TestSetConfig_JSONFormat(t *testing.T) {
	buf := withBuffer(t)

	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	SetConfig(cfg)

	Logger("jsonsub").Info("hello", "n", 1)
	line := strings.TrimSpace(buf.String())
	require.True(t, strings.HasPrefix(line, "{"), line)
	assert.Contains(t, line, `"subsystem":"jsonsub"`)
}

func TestSetConfig_UpdatesExistingLevels(t *testing.T) {
	buf := withBuffer(t)

	log := Logger("dyn")
	log.Debug("before")
	assert.Empty(t, buf.String())

	cfg := DefaultConfig()
	cfg.SubsystemLevels["dyn"] = slog.LevelDebug
	SetConfig(cfg)

	log.Debug("after")
	assert.Contains(t, buf.String(), "after")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}
