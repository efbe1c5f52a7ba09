package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"miniblog/pkg/config"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(true, &buf)
	logger.Debug().Msg("debug message")
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Errorf("Debug log should have debug level, got: %s", buf.String())
	}
	buf.Reset()

	logger = NewLogger(false, &buf)
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debug log should be suppressed at info level, got: %s", buf.String())
	}
	logger.Info().Msg("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("Info log should contain 'info message', got: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewLogger(false, &buf), "api")
	logger.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log line is not JSON: %v", err)
	}
	if entry["component"] != "api" {
		t.Errorf("Expected component 'api', got %v", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected a timestamp field")
	}
}

func TestNewWithFile(t *testing.T) {
	cfg := config.Default().Logging
	cfg.LogToFile = true
	cfg.LogFilePath = filepath.Join(t.TempDir(), "test.log")

	logger, closer := New(cfg)
	logger.Info().Msg("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
