// Package durlog logs timer results through log/slog with a colored,
// label-prefixed terminal handler.
package durlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ruzickbelle/timering/pkg/timing"
)

const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
	colorInfo  = "\033[36m" // Light blue
	colorWarn  = "\033[33m" // Yellow
	colorError = "\033[31m" // Red
)

// DurLogHandler is a slog.Handler that writes label-prefixed, colored lines
// meant for a terminal.
type DurLogHandler struct {
	label  string
	attrs  []slog.Attr
	output io.Writer
}

// New returns a logger with the given label, writing to stderr.
func New(label string) *slog.Logger {
	return slog.New(&DurLogHandler{label: label, output: os.Stderr})
}

// Callback returns a timing callback that logs each elapsed value under msg.
func Callback(l *slog.Logger, msg string, unit timing.Unit) timing.Callback {
	return func(r timing.Result) {
		l.Info(msg, "elapsed", r, "unit", string(unit))
	}
}

func (h *DurLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelDebug
}

func (h *DurLogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.label)
	b.WriteString(" ")
	b.WriteString(levelToColor(r.Level))
	b.WriteString(r.Message)
	b.WriteString(colorReset)
	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, attr)
		return true
	})
	b.WriteString("\n")
	_, err := io.WriteString(h.output, b.String())
	return err
}

func (h *DurLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DurLogHandler{
		label:  h.label,
		attrs:  append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		output: h.output,
	}
}

func (h *DurLogHandler) WithGroup(string) slog.Handler {
	return h
}

func writeAttr(b *strings.Builder, attr slog.Attr) {
	b.WriteString(" ")
	b.WriteString(colorDim)
	b.WriteString("[")
	b.WriteString(colorReset)
	b.WriteString(" ")
	b.WriteString(attr.Key)
	b.WriteString(colorDim)
	b.WriteString("=")
	b.WriteString(colorReset)
	b.WriteString(fmt.Sprintf("%v", attr.Value.Any()))
	b.WriteString(" ")
	b.WriteString(colorDim)
	b.WriteString("]")
	b.WriteString(colorReset)
}

func levelToColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorError
	case level >= slog.LevelWarn:
		return colorWarn
	case level >= slog.LevelInfo:
		return colorInfo
	default:
		return colorDim
	}
}
