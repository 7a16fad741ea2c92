package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 44077 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.ConnectTimeout() != 3*time.Second {
		t.Errorf("connect timeout = %v", cfg.ConnectTimeout())
	}
	if cfg.HeartbeatInterval() != 10*time.Second {
		t.Errorf("heartbeat interval = %v", cfg.HeartbeatInterval())
	}
	if cfg.ReconnectJitter != 0.2 {
		t.Errorf("jitter = %v", cfg.ReconnectJitter)
	}
	if cfg.MaxLineLength != 8192 {
		t.Errorf("max line length = %d", cfg.MaxLineLength)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ENVY_HOST", "envy.local")
	t.Setenv("ENVY_PORT", "55000")
	t.Setenv("ENVY_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "envy.local" {
		t.Errorf("host = %q", cfg.Host)
	}
	if cfg.Port != 55000 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "HOST: 192.168.1.50\nPORT: 44078\nCOMMAND_TIMEOUT_MS: 1500\n"
	if err := os.WriteFile(filepath.Join(dir, "envy.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Host != "192.168.1.50" {
		t.Errorf("host = %q", cfg.Host)
	}
	if cfg.Port != 44078 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.CommandTimeout() != 1500*time.Millisecond {
		t.Errorf("command timeout = %v", cfg.CommandTimeout())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"ENVY_PORT":             "70000",
		"ENVY_LOG_LEVEL":        "verbose",
		"ENVY_RECONNECT_JITTER": "1.5",
		"ENVY_MAX_LINE_LENGTH":  "10",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Errorf("%s=%s accepted", key, value)
			}
		})
	}
}

func TestLoadRejectsInvertedBackoff(t *testing.T) {
	t.Setenv("ENVY_RECONNECT_INITIAL_BACKOFF_MS", "5000")
	t.Setenv("ENVY_RECONNECT_MAX_BACKOFF_MS", "1000")
	if _, err := Load(""); err == nil {
		t.Error("max backoff below initial accepted")
	}
}
