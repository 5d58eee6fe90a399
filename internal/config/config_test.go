package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Store.Endpoint != "http://localhost:5001/api/graph" {
		t.Errorf("Store.Endpoint = %s, want default glossary endpoint", cfg.Store.Endpoint)
	}
	if cfg.Store.DanglingEdges != "fail" {
		t.Errorf("Store.DanglingEdges = %s, want fail", cfg.Store.DanglingEdges)
	}
	if cfg.View.Locale != "ru" {
		t.Errorf("View.Locale = %s, want ru", cfg.View.Locale)
	}
	if cfg.Layout.TickInterval.Duration() != 16*time.Millisecond {
		t.Errorf("Layout.TickInterval = %s, want 16ms", cfg.Layout.TickInterval.Duration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
	if cfg.IsProduction() {
		t.Error("DefaultConfig().IsProduction() = true, want development")
	}
	cfg.Env = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with env production")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad dangling policy", func(c *Config) { c.Store.DanglingEdges = "ignore" }, "store.dangling_edges must be one of: fail drop"},
		{"bad locale", func(c *Config) { c.View.Locale = "de" }, "view.locale must be one of"},
		{"bad endpoint", func(c *Config) { c.Store.Endpoint = "not a url" }, "store.endpoint must be a valid URL"},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"negative retries", func(c *Config) { c.Store.Retries = -1 }, "store.retries is out of range"},
		{"bad env", func(c *Config) { c.Env = "staging" }, "env must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			cfg := DefaultConfig()
			cfg.Store.DanglingEdges = "drop"
			cfg.Store.File = "/srv/glossary.yaml"
			cfg.Store.Timeout = Duration(3 * time.Second)
			cfg.View.Locale = "en"

			if err := cfg.Save(configPath); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			loaded, path, err := LoadFromPath(configPath)
			if err != nil {
				t.Fatalf("LoadFromPath() error: %v", err)
			}
			if path != configPath {
				t.Errorf("path = %s, want %s", path, configPath)
			}
			if loaded.Store.DanglingEdges != "drop" {
				t.Errorf("Store.DanglingEdges = %s, want drop", loaded.Store.DanglingEdges)
			}
			if loaded.Store.File != "/srv/glossary.yaml" {
				t.Errorf("Store.File = %s", loaded.Store.File)
			}
			if loaded.Store.Timeout.Duration() != 3*time.Second {
				t.Errorf("Store.Timeout = %s, want 3s", loaded.Store.Timeout.Duration())
			}
			if loaded.View.Locale != "en" {
				t.Errorf("View.Locale = %s, want en", loaded.View.Locale)
			}
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "glossgraph.toml")
	data := "[store]\nendpoint = \"http://glossary.local/api/graph\"\nretries = 5\n"
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Store.Endpoint != "http://glossary.local/api/graph" {
		t.Errorf("Store.Endpoint = %s", cfg.Store.Endpoint)
	}
	if cfg.Store.Retries != 5 {
		t.Errorf("Store.Retries = %d, want 5", cfg.Store.Retries)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %s, want default :3000", cfg.Server.Addr)
	}
	if cfg.Layout.Width != 960 {
		t.Errorf("Layout.Width = %g, want 960", cfg.Layout.Width)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "glossgraph.yaml")
	if err := os.WriteFile(configPath, []byte("store:\n  dangling_edges: maybe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFromPath(configPath); err == nil {
		t.Error("expected validation error for dangling_edges: maybe")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://env.local/api/graph")
	t.Setenv(EnvLocale, "en")
	t.Setenv(EnvRetries, "4")
	t.Setenv(EnvTimeout, "750ms")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Store.Endpoint != "http://env.local/api/graph" {
		t.Errorf("Store.Endpoint = %s", cfg.Store.Endpoint)
	}
	if cfg.View.Locale != "en" {
		t.Errorf("View.Locale = %s, want en", cfg.View.Locale)
	}
	if cfg.Store.Retries != 4 {
		t.Errorf("Store.Retries = %d, want 4", cfg.Store.Retries)
	}
	if cfg.Store.Timeout.Duration() != 750*time.Millisecond {
		t.Errorf("Store.Timeout = %s, want 750ms", cfg.Store.Timeout.Duration())
	}

	t.Setenv(EnvRetries, "many")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric retries")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GLOSSGRAPH_SEED=/data/seed.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv(EnvSeed); got != "/data/seed.yaml" {
		t.Errorf("%s = %q, want /data/seed.yaml", EnvSeed, got)
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileNameTOML)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	found := FindConfigPath()
	if filepath.Base(found) != ConfigFileNameTOML {
		t.Errorf("FindConfigPath() = %q, want the TOML file in the working directory", found)
	}

	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}

	var parsed Duration
	if err := parsed.UnmarshalText([]byte("1h30m")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if parsed.Duration() != 90*time.Minute {
		t.Errorf("UnmarshalText() = %s, want 1h30m", parsed.Duration())
	}
	if err := parsed.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected error for invalid duration")
	}
}
