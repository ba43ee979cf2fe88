package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := New(Options{ServiceName: "test", Output: buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithFields(ctx, map[string]any{"order_id": "o-1"})
	logg.Info(ctx, "hello")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["request_id"] != "req-123" {
		t.Fatalf("missing request_id: %v", entries[0])
	}
	if entries[0]["order_id"] != "o-1" {
		t.Fatalf("missing order_id: %v", entries[0])
	}
	if entries[0]["service"] != "test" {
		t.Fatalf("missing service field: %v", entries[0])
	}
}

func TestLoggerErrorIncludesStack(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := New(Options{ServiceName: "test", Output: buf})

	logg.Error(context.Background(), "boom", context.DeadlineExceeded)

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["stack"] == nil {
		t.Fatal("expected stack field on error log")
	}
	if entries[0]["error"] != context.DeadlineExceeded.Error() {
		t.Fatalf("unexpected error field: %v", entries[0]["error"])
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %s", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", got)
	}
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %s", got)
	}
}
