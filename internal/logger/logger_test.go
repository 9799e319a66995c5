package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("expected key=value in JSON output, got: %s", out)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Debug("also hidden")
	if buf.Len() > 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}

	log.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected warn message, got: %s", buf.String())
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("component", "api")
	log.Info("child message")

	out := buf.String()
	if !strings.Contains(out, `"component":"api"`) {
		t.Fatalf("expected bound attribute, got: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info("roundtrip")
	if !strings.Contains(buf.String(), "roundtrip") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without a logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPrettyOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("test message", "key", "value", "msg", "hello world")

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Fatalf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Fatalf("expected plain attr, got: %s", out)
	}
	if !strings.Contains(out, `msg="hello world"`) {
		t.Fatalf("expected quoting of spaced string, got: %s", out)
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()

	h := NewPrettyHandler(&bytes.Buffer{}, slog.LevelWarn)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelInfo).WithAttrs([]slog.Attr{slog.String("service", "probe")})
	slog.New(h).Info("with attrs")

	if !strings.Contains(buf.String(), "service=probe") {
		t.Fatalf("expected bound attr, got: %s", buf.String())
	}
}
