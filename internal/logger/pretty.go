package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
)

// PrettyHandler is a slog.Handler with colored single-line output for
// terminal use.
type PrettyHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

// NewPrettyHandler creates a PrettyHandler writing records at or above level.
func NewPrettyHandler(w io.Writer, level slog.Level) *PrettyHandler {
	return &PrettyHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(colorGray)
	b.WriteByte('[')
	b.WriteString(r.Time.Format(time.DateTime))
	b.WriteByte(']')
	b.WriteString(colorReset)
	b.WriteByte(' ')

	b.WriteString(levelColor(r.Level))
	b.WriteString(r.Level.String())
	b.WriteString(colorReset)
	b.WriteByte(' ')
	b.WriteString(r.Message)

	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	if len(attrs) > 0 {
		b.WriteByte(' ')
		b.WriteString(colorCyan)
		for i, a := range attrs {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.Key)
			b.WriteByte('=')
			writeValue(&b, a.Value)
		}
		b.WriteString(colorReset)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PrettyHandler{w: h.w, mu: h.mu, level: h.level, attrs: merged}
}

func (h *PrettyHandler) WithGroup(string) slog.Handler { return h }

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}

func writeValue(b *strings.Builder, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " \t\n\"") {
			b.WriteString(strconv.Quote(s))
		} else {
			b.WriteString(s)
		}
	case slog.KindTime:
		b.WriteString(v.Time().Format(time.RFC3339))
	default:
		fmt.Fprint(b, v.Any())
	}
}
