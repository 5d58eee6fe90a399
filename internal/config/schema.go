package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int          `yaml:"version" toml:"version"`
	Env     string       `yaml:"env" toml:"env" validate:"oneof=development production"`
	Log     LogConfig    `yaml:"log" toml:"log"`
	Server  ServerConfig `yaml:"server" toml:"server"`
	Store   StoreConfig  `yaml:"store" toml:"store"`
	Layout  LayoutConfig `yaml:"layout" toml:"layout"`
	View    ViewConfig   `yaml:"view" toml:"view"`
	Source  SourceConfig `yaml:"source" toml:"source"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// ServerConfig holds the viewer HTTP server settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr" validate:"required"`
	CORSOrigins     []string `yaml:"cors_origins" toml:"cors_origins"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// StoreConfig says where the viewer gets its graph: File if set, else
// Catalog if set, else Endpoint.
type StoreConfig struct {
	Endpoint      string   `yaml:"endpoint" toml:"endpoint" validate:"omitempty,url"`
	File          string   `yaml:"file" toml:"file"`
	Catalog       string   `yaml:"catalog" toml:"catalog"`
	DanglingEdges string   `yaml:"dangling_edges" toml:"dangling_edges" validate:"oneof=fail drop"`
	Timeout       Duration `yaml:"timeout" toml:"timeout"`
	Retries       int      `yaml:"retries" toml:"retries" validate:"gte=0,lte=10"`
	Backoff       Duration `yaml:"backoff" toml:"backoff"`
}

// LayoutConfig holds force simulation settings
type LayoutConfig struct {
	Width          float64  `yaml:"width" toml:"width" validate:"gt=0"`
	Height         float64  `yaml:"height" toml:"height" validate:"gt=0"`
	TickInterval   Duration `yaml:"tick_interval" toml:"tick_interval"`
	LinkDistance   float64  `yaml:"link_distance" toml:"link_distance" validate:"gte=0"`
	ChargeStrength float64  `yaml:"charge_strength" toml:"charge_strength" validate:"lte=0"`
	CollideRadius  float64  `yaml:"collide_radius" toml:"collide_radius" validate:"gte=0"`
}

// ViewConfig holds presentation settings
type ViewConfig struct {
	Locale string `yaml:"locale" toml:"locale" validate:"oneof=ru en"`
}

// SourceConfig holds the glossary source server settings
type SourceConfig struct {
	Addr     string `yaml:"addr" toml:"addr" validate:"required"`
	Seed     string `yaml:"seed" toml:"seed"`
	Database string `yaml:"database" toml:"database" validate:"required"`
	Import   string `yaml:"import" toml:"import" validate:"oneof=merge replace"`
	Watch    bool   `yaml:"watch" toml:"watch"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by TOML and env
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
