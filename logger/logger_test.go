package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stevemurr/jsonrecords/config"
	"github.com/stevemurr/jsonrecords/logger"
)

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(config.LoggingConfig{Level: "warn", Format: "console"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("key not found in document")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "key not found in document") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestNew_JSONAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "jsonrecords.log")
	log, err := logger.New(config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		File:       file,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("merged directory")
	_ = log.Sync()

	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected JSON output, got %s", buf.String())
	}
	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "merged directory") {
		t.Fatalf("log file missing entry: %s", b)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := logger.New(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level")
	}
	if _, err := logger.New(config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
