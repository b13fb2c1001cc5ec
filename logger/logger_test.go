package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"chatty":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controller.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false

	require.NoError(t, InitWithFileConfig("warn", cfg, false))
	t.Cleanup(func() { Log = zap.NewNop(); Sugar = Log.Sugar() })

	Named("motion").Info("dropped below level")
	Warn("degenerate tuning", zap.String("field", "jump_time"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "degenerate tuning")
	assert.Contains(t, out, "jump_time")
	assert.NotContains(t, out, "dropped below level")
}

func TestGlobalDefaultsToNop(t *testing.T) {
	require.NotNil(t, Log)
	assert.NotPanics(t, func() { Debug("quiet") })
	assert.NotNil(t, NewNop())
}
