package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var configEnvKeys = []string{
	"PORT", "STATIC_PATH", "DB_PATH", "LOG_LEVEL",
	"FEED_WORKERS", "FEED_QUEUE_SIZE", "METRICS_ENABLED", "CONFIG_FILE",
}

// clearEnv blanks every variable Load reads; empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/elves.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FEED_WORKERS", "8")
	t.Setenv("FEED_QUEUE_SIZE", "1024")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/tmp/elves.db" {
		t.Errorf("DBPath = %q, want /tmp/elves.db", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.FeedWorkers != 8 || cfg.FeedQueueSize != 1024 {
		t.Errorf("feed pool = %d/%d, want 8/1024", cfg.FeedWorkers, cfg.FeedQueueSize)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  port: 7000
  static_path: /srv/static
database:
  path: /var/lib/elves.db
log:
  level: warn
feed:
  workers: 2
  queue_size: 32
metrics:
  enabled: false
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("FEED_WORKERS", "6")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want 7000 from file", cfg.Port)
	}
	if cfg.StaticPath != "/srv/static" {
		t.Errorf("StaticPath = %q, want /srv/static", cfg.StaticPath)
	}
	if cfg.DBPath != "/var/lib/elves.db" {
		t.Errorf("DBPath = %q, want /var/lib/elves.db", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.FeedWorkers != 6 {
		t.Errorf("FeedWorkers = %d, want env override 6", cfg.FeedWorkers)
	}
	if cfg.FeedQueueSize != 32 {
		t.Errorf("FeedQueueSize = %d, want 32", cfg.FeedQueueSize)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false from file")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to "".
	os.Unsetenv("PORT")
	t.Cleanup(func() { os.Unsetenv("PORT") })

	path := writeFile(t, "test.env", "PORT=8181\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8181 {
		t.Errorf("Port = %d, want 8181 from env file", cfg.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "zero workers", env: map[string]string{"FEED_WORKERS": "0"}},
		{name: "zero queue", env: map[string]string{"FEED_QUEUE_SIZE": "0"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	t.Run("missing env file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load("/nonexistent/.env"); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
