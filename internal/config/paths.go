package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "GLOSSGRAPH_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "glossgraph.yaml"
	// ConfigFileNameTOML is the TOML variant, tried after ConfigFileName
	ConfigFileNameTOML = "glossgraph.toml"
	// ConfigDirName is the per-user directory under the user config root
	ConfigDirName = "glossgraph"

	userConfigFile = "config.yaml"
)

// searchPaths lists config candidates, most specific first
func searchPaths() []string {
	var paths []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameTOML} {
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
		paths = append(paths, name)
	}
	if dir, ok := userDir(); ok {
		paths = append(paths, filepath.Join(dir, userConfigFile))
	}
	return paths
}

// userDir is $XDG_CONFIG_HOME/glossgraph or ~/.config/glossgraph
func userDir() (string, bool) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(root, ConfigDirName), true
}

// FindConfigPath returns the first existing config file among
// $GLOSSGRAPH_CONFIG, the working directory and the user config directory,
// or "" when there is none.
func FindConfigPath() string {
	for _, p := range searchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// DefaultConfigPath is where `config init` writes when given no path
func DefaultConfigPath() string {
	if dir, ok := userDir(); ok {
		return filepath.Join(dir, userConfigFile)
	}
	return ConfigFileName
}

// EnsureConfigDir creates the parent directory of configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0o755)
}
