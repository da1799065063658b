package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		" Fatal ": log.FatalLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Fatalf("expected json formatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Fatalf("expected logfmt formatter")
	}
	if ParseFormatter("") != log.TextFormatter {
		t.Fatalf("expected text formatter by default")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "key", "todos")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "todos") {
		t.Fatalf("expected warn line with field, got %q", out)
	}
}

func TestNewJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "debug", Format: "json"})

	logger.Error("write failed", "key", "darkMode")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "write failed" || entry["key"] != "darkMode" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")

	logger, closer, err := OpenFile(path, Options{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	logger.Info("first")
	_ = closer.Close()

	logger, closer, err = OpenFile(path, Options{})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	logger.Info("second")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Fatalf("expected both lines, got %q", data)
	}
}
