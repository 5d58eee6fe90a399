package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvPrefix = "GLOSSGRAPH_"

	EnvEnv           = EnvPrefix + "ENV"
	EnvLogLevel      = EnvPrefix + "LOG_LEVEL"
	EnvAddr          = EnvPrefix + "ADDR"
	EnvEndpoint      = EnvPrefix + "ENDPOINT"
	EnvFile          = EnvPrefix + "FILE"
	EnvCatalog       = EnvPrefix + "CATALOG"
	EnvDanglingEdges = EnvPrefix + "DANGLING_EDGES"
	EnvRetries       = EnvPrefix + "RETRIES"
	EnvTimeout       = EnvPrefix + "TIMEOUT"
	EnvLocale        = EnvPrefix + "LOCALE"
	EnvSourceAddr    = EnvPrefix + "SOURCE_ADDR"
	EnvSeed          = EnvPrefix + "SEED"
	EnvDatabase      = EnvPrefix + "DATABASE"
)

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from GLOSSGRAPH_* variables
func (c *Config) ApplyEnv() error {
	setString(&c.Env, EnvEnv)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Server.Addr, EnvAddr)
	setString(&c.Store.Endpoint, EnvEndpoint)
	setString(&c.Store.File, EnvFile)
	setString(&c.Store.Catalog, EnvCatalog)
	setString(&c.Store.DanglingEdges, EnvDanglingEdges)
	setString(&c.View.Locale, EnvLocale)
	setString(&c.Source.Addr, EnvSourceAddr)
	setString(&c.Source.Seed, EnvSeed)
	setString(&c.Source.Database, EnvDatabase)

	if v := os.Getenv(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		c.Store.Retries = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if err := c.Store.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}
