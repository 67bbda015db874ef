// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	if New() == nil {
		t.Fatal("New() should return a logger, got nil")
	}
	if NewNop() == nil {
		t.Fatal("NewNop() should return a logger, got nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DBG", LevelDebug},
		{"  debug  ", LevelDebug},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"err", LevelError},
		{"ERROR", LevelError},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKVFields(t *testing.T) {
	got := kvFields("key1", "value1", 2, 42, "dangling")
	want := []any{"key1", "value1", "2", 42, "dangling", "(missing)"}

	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug)

	scoped := logger.With("module", "theharvester")
	scoped.Info("test message", "count", 2)
	logger.Info("original")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["module"] != "theharvester" {
		t.Errorf("scoped line should carry module field, got %v", lines[0])
	}
	if lines[0]["message"] != "test message" {
		t.Errorf("unexpected message: %v", lines[0]["message"])
	}
	if _, ok := lines[1]["module"]; ok {
		t.Errorf("original logger should not inherit scope: %v", lines[1])
	}
}

func TestLogger_Err(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelError)

	logger.Err(errors.New("test error"), "domain", "example.com")
	logger.Err(nil, "domain", "ignored")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(lines))
	}
	if lines[0]["error"] != "test error" {
		t.Errorf("expected error field, got %v", lines[0])
	}
	if lines[0]["domain"] != "example.com" {
		t.Errorf("expected domain field, got %v", lines[0])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  []string
	}{
		{"debug", LevelDebug, []string{"debug", "info", "warn", "error"}},
		{"info", LevelInfo, []string{"info", "warn", "error"}},
		{"warn", LevelWarn, []string{"warn", "error"}},
		{"error", LevelError, []string{"error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.level)

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Err(errors.New("e"))

			lines := decodeLines(t, &buf)
			if len(lines) != len(tt.want) {
				t.Fatalf("expected %d lines, got %d: %s", len(tt.want), len(lines), buf.String())
			}
			for i, lvl := range tt.want {
				if lines[i]["level"] != lvl {
					t.Errorf("line %d: expected level %s, got %v", i, lvl, lines[i]["level"])
				}
			}
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.SetLevel(LevelDebug)
	logger.Debug("visible")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "visible" {
		t.Errorf("expected only the post-SetLevel debug line, got %s", buf.String())
	}
}

func TestLogger_ThreadSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.With("worker", n).Info("tick")
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 50 {
		t.Errorf("expected 50 lines, got %d", got)
	}
}
