package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"

	watermark "github.com/gcslaoli/watermark-unblend"
)

// WarningPrefix marks lines about skipped inputs.
const WarningPrefix = "⚠️ "

// Sink echoes progress lines to a terminal and records them on a zap logger.
// It is safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	logger *zap.Logger
	lines  int
	errors int
}

// NewSink writes progress to out. A nil logger discards structured entries.
func NewSink(out io.Writer, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{out: out, logger: logger}
}

// Func returns the sink as a watermark.LogSink.
func (s *Sink) Func() watermark.LogSink {
	return s.Log
}

// Log prints message and records it.
func (s *Sink) Log(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines++
	if watermark.IsErrorLine(message) {
		s.errors++
		s.logger.Error("processing failed", zap.String("line", message))
	} else {
		s.logger.Info("progress", zap.String("line", message))
	}

	if s.out != nil {
		fmt.Fprintln(s.out, paint(message).Sprint(message))
	}
}

// Counts returns the number of lines and error lines seen.
func (s *Sink) Counts() (lines, errors int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines, s.errors
}

func paint(message string) *color.Color {
	switch {
	case watermark.IsErrorLine(message):
		return color.New(color.FgRed)
	case strings.HasPrefix(message, WarningPrefix):
		return color.New(color.FgYellow)
	case strings.HasPrefix(message, watermark.SavedPNGPrefix), strings.HasPrefix(message, watermark.SavedJPGPrefix):
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}
