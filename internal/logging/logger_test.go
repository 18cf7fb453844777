package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.WarnLevel},
		{"verbose", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		if result := parseLevel(tt.input); result != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", NoColor: true}, &buf)

	logger.Info().Msg("hidden message")
	logger.Warn().Str("file", "broken.desktop").Msg("visible message")

	output := buf.String()
	if strings.Contains(output, "hidden message") {
		t.Errorf("info message written at warn level:\n%s", output)
	}
	if !strings.Contains(output, "visible message") || !strings.Contains(output, "file=broken.desktop") {
		t.Errorf("warn message missing:\n%s", output)
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "applauncher.log")
	logger := NewLogger(Config{Level: "debug", LogFile: path, NoColor: true}, &bytes.Buffer{})

	logger.Error().Err(errors.New("boom")).Msg("scan failed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"message":"scan failed"`) {
		t.Errorf("log file content = %s", data)
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	NewTestLogger(&buf).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
