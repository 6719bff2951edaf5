package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "editor.log")

	err := InitWithOptions(Options{Level: "debug", File: logFile, Console: false})
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Info("terrain mesh rebuilt")
	Sugar.Debugf("brush applied at (%.1f, %.1f)", 32.0, 32.0)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "terrain mesh rebuilt") {
		t.Error("log file missing info message")
	}
	if !strings.Contains(string(data), "brush applied") {
		t.Error("log file missing debug message")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"warn":    "warn",
		"error":   "error",
		"info":    "info",
		"unknown": "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
