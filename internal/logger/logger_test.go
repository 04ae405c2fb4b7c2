package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithOutputLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "default when empty", level: "", expected: zerolog.InfoLevel},
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "upper case", level: "WARN", expected: zerolog.WarnLevel},
		{name: "garbage falls back to info", level: "loud", expected: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewWithOutput(tt.level, &bytes.Buffer{})
			if l.GetLevel() != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, l.GetLevel())
			}
		})
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("info", &buf)
	l.Info().Str("accountId", "acc-1").Msg("deposit applied")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "deposit applied" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	if entry["service"] != "bankapp" {
		t.Errorf("unexpected service field: %v", entry["service"])
	}
	if entry["accountId"] != "acc-1" {
		t.Errorf("unexpected accountId field: %v", entry["accountId"])
	}
}
