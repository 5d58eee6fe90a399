// Package config provides configuration management for glossgraph.
//
// Config files are YAML or TOML, chosen by extension. Values from a .env file
// and GLOSSGRAPH_* environment variables override the file, and the result is
// validated before use.
//
// Config file locations (priority order):
//  1. $GLOSSGRAPH_CONFIG
//  2. ./glossgraph.yaml
//  3. ./glossgraph.toml
//  4. ~/.config/glossgraph/config.yaml
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or starts from defaults if none is
// found. Environment overrides and validation apply either way.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	var cfg *Config
	if path == "" {
		cfg = DefaultConfig()
	} else {
		var err error
		cfg, err = readFile(path)
		if err != nil {
			return nil, path, err
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.finish(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) finish() error {
	if err := c.ApplyEnv(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.Validate()
}

// Save writes config to path, as TOML for a .toml path and YAML otherwise
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Env:     "development",
		Server: ServerConfig{
			Addr:            ":3000",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Store: StoreConfig{
			Endpoint:      "http://localhost:5001/api/graph",
			DanglingEdges: "fail",
			Timeout:       Duration(10 * time.Second),
			Retries:       2,
			Backoff:       Duration(500 * time.Millisecond),
		},
		Layout: LayoutConfig{
			Width:          960,
			Height:         600,
			TickInterval:   Duration(16 * time.Millisecond),
			LinkDistance:   100,
			ChargeStrength: -300,
			CollideRadius:  40,
		},
		View: ViewConfig{Locale: "ru"},
		Source: SourceConfig{
			Addr:     ":5001",
			Database: "./glossgraph.db",
			Import:   "replace",
			Watch:    true,
		},
	}
}

// applyDefaults fills in values a partial file or override left empty
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Env == "" {
		c.Env = d.Env
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Store.DanglingEdges == "" {
		c.Store.DanglingEdges = d.Store.DanglingEdges
	}
	if c.Store.Timeout == 0 {
		c.Store.Timeout = d.Store.Timeout
	}
	if c.Store.Backoff == 0 {
		c.Store.Backoff = d.Store.Backoff
	}
	if c.Layout.Width == 0 {
		c.Layout.Width = d.Layout.Width
	}
	if c.Layout.Height == 0 {
		c.Layout.Height = d.Layout.Height
	}
	if c.Layout.TickInterval == 0 {
		c.Layout.TickInterval = d.Layout.TickInterval
	}
	if c.View.Locale == "" {
		c.View.Locale = d.View.Locale
	}
	if c.Source.Addr == "" {
		c.Source.Addr = d.Source.Addr
	}
	if c.Source.Database == "" {
		c.Source.Database = d.Source.Database
	}
	if c.Source.Import == "" {
		c.Source.Import = d.Source.Import
	}
}

// IsProduction reports whether the production environment is configured
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	source := c.Store.Endpoint
	switch {
	case c.Store.File != "":
		source = "file " + c.Store.File
	case c.Store.Catalog != "":
		source = "catalog " + c.Store.Catalog
	}

	summary := fmt.Sprintf("Env: %s, Locale: %s, Listen: %s\n", c.Env, c.View.Locale, c.Server.Addr)
	summary += fmt.Sprintf("Graph: %s (dangling edges: %s)\n", source, c.Store.DanglingEdges)
	summary += fmt.Sprintf("Layout: %gx%g, tick %s", c.Layout.Width, c.Layout.Height, c.Layout.TickInterval.Duration())
	return summary
}
