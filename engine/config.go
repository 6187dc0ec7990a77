package engine

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation reports a structurally invalid argon.yaml.
var ErrConfigValidation = errors.New("configuration validation failed")

// ConnectionConfig names the driver and DSN for one CONNECTION the
// embedder did not pre-inject via Engine.AddConnection.
type ConnectionConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Config is Argon's ambient configuration file (argon.yaml): named
// connections and a default log level, the config layer a real
// embedding needs beyond what the bare interpreter core provides.
type Config struct {
	Connections map[string]ConnectionConfig `yaml:"connections"`
	LogLevel    string                      `yaml:"log_level"`
	ScriptPath  string                      `yaml:"script_path"`
}

// LoadConfig reads and validates argon.yaml at path, loading a .env
// file from the current working directory first so connection DSNs
// can reference environment variables.
// A missing config file is not an error: Argon runs fine against an
// empty Config when every connection is supplied via AddConnection.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("engine: load .env: %w", err)
	}

	cfg := &Config{Connections: map[string]ConnectionConfig{}, LogLevel: "info"}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: read config: %w", err)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("engine: parse config: %w", err)
	}

	if cfg.Connections == nil {
		cfg.Connections = map[string]ConnectionConfig{}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	expandConfigEnvVars(cfg)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	validDrivers := map[string]bool{"sqlite3": true, "postgres": true, "mysql": true}

	for name, cc := range cfg.Connections {
		if cc.Driver != "" && !validDrivers[cc.Driver] {
			return fmt.Errorf("%w: connection %q: unsupported driver %q", ErrConfigValidation, name, cc.Driver)
		}
	}

	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} references. Only the braced form is
// supported, since DSNs commonly embed punctuation right after the
// variable name.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

func expandConfigEnvVars(cfg *Config) {
	for name, cc := range cfg.Connections {
		cc.DSN = expandEnvVars(cc.DSN)
		cfg.Connections[name] = cc
	}

	cfg.ScriptPath = expandEnvVars(cfg.ScriptPath)
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}

	return godotenv.Load(".env")
}
