package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup := setup(&buf, "warn", "json", "")
	defer cleanup()

	logger.Info("dropped")
	logger.Warn("load failed", "file", "people.csv")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if entry["msg"] != "load failed" || entry["file"] != "people.csv" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, opts),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("table", "people")

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled by the first handler")
	}
	logger.Debug("scan")
	logger.Error("boom")

	if !strings.Contains(a.String(), "msg=scan") || !strings.Contains(a.String(), "msg=boom") {
		t.Errorf("first handler missed records: %q", a.String())
	}
	if strings.Contains(b.String(), "msg=scan") || !strings.Contains(b.String(), "table=people") {
		t.Errorf("second handler output wrong: %q", b.String())
	}
}
