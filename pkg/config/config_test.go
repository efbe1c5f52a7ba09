package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 8081
  write_timeout: 3s
api_keys:
  - alpha
  - beta
storage:
  backend: bolt
  path: /tmp/blog.db
seed: false
logging:
  debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8081" {
		t.Errorf("Expected addr 127.0.0.1:8081, got %s", cfg.Addr())
	}
	if cfg.Server.WriteTimeout != 3*time.Second {
		t.Errorf("Expected write timeout 3s, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected default read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if !reflect.DeepEqual(cfg.APIKeys, []string{"alpha", "beta"}) {
		t.Errorf("Expected keys [alpha beta], got %v", cfg.APIKeys)
	}
	if cfg.Storage.Backend != BackendBolt || cfg.Storage.Path != "/tmp/blog.db" {
		t.Errorf("Unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Seed {
		t.Error("Expected seed to be disabled")
	}
	if !cfg.Logging.Debug {
		t.Error("Expected debug logging")
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Expected default max backups 3, got %d", cfg.Logging.MaxBackups)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 3000 {
		t.Errorf("Expected port 3000, got %d", cfg.Server.Port)
	}
	want := []string{"perscholas", "ps-example", "hJAsknw-L198sAJD-l3kasx"}
	if !reflect.DeepEqual(cfg.APIKeys, want) {
		t.Errorf("Expected keys %v, got %v", want, cfg.APIKeys)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Storage.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "server: [", "failed to parse"},
		{"unknown backend", "storage:\n  backend: redis\n", "unknown storage.backend"},
		{"empty keys", "api_keys: []\n", "api_keys must not be empty"},
		{"port range", "server:\n  port: 70000\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	cfg := FromEnv()
	if !reflect.DeepEqual(cfg.APIKeys, Default().APIKeys) {
		t.Errorf("Expected default keys without env, got %v", cfg.APIKeys)
	}

	t.Setenv("MINIBLOG_API_KEYS", "only-key")
	cfg = FromEnv()
	if !reflect.DeepEqual(cfg.APIKeys, []string{"only-key"}) {
		t.Errorf("Expected env keys, got %v", cfg.APIKeys)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Expected default port, got %d", cfg.Server.Port)
	}
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv("MINIBLOG_API_KEYS", " one, two ,,")
	cfg, err := Load(writeConfig(t, "seed: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.APIKeys, []string{"one", "two"}) {
		t.Errorf("Expected env keys, got %v", cfg.APIKeys)
	}
}
