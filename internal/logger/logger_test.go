package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesLogFile(t *testing.T) {
	dir := t.TempDir()

	log := New(Config{Level: "info", Format: "json", Path: dir})
	log.Info().Msg("started")
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "mydia.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"started"`) {
		t.Errorf("log file missing message: %s", data)
	}
}

func TestNewWithoutPathHasNoRotator(t *testing.T) {
	log := New(Config{Level: "info", Format: "json"})
	if log.rotator != nil {
		t.Error("rotator created without a log path")
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{Logger: zerolog.New(&buf)}

	base.WithComponent("decisioning").Info().Msg("ranked")

	out := buf.String()
	if !strings.Contains(out, `"component":"decisioning"`) {
		t.Errorf("component field missing: %s", out)
	}
}
