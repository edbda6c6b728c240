package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSinkEchoesAndRecords(t *testing.T) {
	color.NoColor = true

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	sink := NewSink(&out, zap.New(core))

	log := sink.Func()
	log("⚡ Processing... (10x10)")
	log("💾 Saved PNG: a.png")
	log("❌ Error: missing mask: assets/mask_48.png")

	assert.Equal(t, "⚡ Processing... (10x10)\n💾 Saved PNG: a.png\n❌ Error: missing mask: assets/mask_48.png\n", out.String())

	lines, errs := sink.Counts()
	assert.Equal(t, 3, lines)
	assert.Equal(t, 1, errs)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "❌ Error: missing mask: assets/mask_48.png", entries[2].ContextMap()["line"])
}

func TestSinkIsSafeForConcurrentUse(t *testing.T) {
	sink := NewSink(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sink.Log("line")
			}
		}()
	}
	wg.Wait()

	lines, errs := sink.Counts()
	assert.Equal(t, 400, lines)
	assert.Zero(t, errs)
}

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "gunblend.log")

	logger := New(Options{Verbose: false, FilePath: path, Console: &console})
	logger.Info("info only in file")
	logger.Warn("warn on both")
	_ = logger.Sync()

	assert.NotContains(t, console.String(), "info only in file")
	assert.Contains(t, console.String(), "warn on both")
	assert.FileExists(t, path)
}

func TestNewVerboseConsole(t *testing.T) {
	var console bytes.Buffer
	logger := New(Options{Verbose: true, Console: &console})
	logger.Debug("debug line")
	_ = logger.Sync()

	assert.True(t, strings.Contains(console.String(), "debug line"))
}
