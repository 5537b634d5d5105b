package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/config"
	"github.com/km-arc/sfx-di/framework/logging"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level: got %v, want debug", logger.GetLevel())
	}

	logger.WithField("key", "config").Debug("Registered binding")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "Registered binding" || entry["key"] != "config" {
		t.Errorf("entry: got %v", entry)
	}
}

func TestNew_TextFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestNew_Rejects(t *testing.T) {
	if _, err := logging.New(config.LogConfig{Level: "loud"}, nil); err == nil {
		t.Error("unknown level should fail")
	}
	if _, err := logging.New(config.LogConfig{Level: "info", Format: "xml"}, nil); err == nil {
		t.Error("unknown format should fail")
	}
}
