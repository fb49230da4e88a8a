package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModuleBeforeInit(t *testing.T) {
	// must not panic without Init
	Module("test").Infow("ignored", "key", "value")
	Sync()
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whois.log")
	if err := Init(Options{Env: "production", File: path, Level: "info"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	Module("test").Infow("lookup done", "domain", "example.com")
	Module("test").Debugw("hidden at info level")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, `"msg":"lookup done"`) || !strings.Contains(log, `"logger":"test"`) {
		t.Errorf("log file = %q", log)
	}
	if strings.Contains(log, "hidden at info level") {
		t.Errorf("debug entry written at info level: %q", log)
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(Options{Level: "loud"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
