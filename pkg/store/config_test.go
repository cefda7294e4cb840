package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "db") + "\nremote:\n  url: http://localhost:9000\n  timeout: 3s\nlog:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, ".palette.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("unexpected path %s", cfg.BasePath())
	}
	if cfg.Remote.URL != "http://localhost:9000" {
		t.Fatalf("unexpected remote url %q", cfg.Remote.URL)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Remote.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnv, t.TempDir())
	t.Setenv("PALETTE_PATH", "/tmp/palette-test.db")
	t.Setenv("PALETTE_REMOTE_URL", "http://example.invalid")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Path != "/tmp/palette-test.db" {
		t.Fatalf("expected env path, got %s", cfg.Path)
	}
	if cfg.Remote.URL != "http://example.invalid" {
		t.Fatalf("expected env remote url, got %s", cfg.Remote.URL)
	}
	if cfg.Remote.Timeout != defaultRemoteTimeout {
		t.Fatalf("expected default timeout, got %v", cfg.Remote.Timeout)
	}
}
