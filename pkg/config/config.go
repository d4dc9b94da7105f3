// Package config loads service configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values like "720h" parse from YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MongoConfig configures the document store connection.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// AuthConfig configures token signing and password hashing.
type AuthConfig struct {
	JWTSecret  string   `yaml:"jwtSecret"`
	TokenTTL   Duration `yaml:"tokenTTL"`
	BcryptCost int      `yaml:"bcryptCost"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in defaults applied before file and env values.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Database: "tasklist"},
		Auth:   AuthConfig{TokenTTL: Duration(30 * 24 * time.Hour)},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads configuration from an optional YAML file and applies
// TASKLIST_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKLIST_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TASKLIST_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("TASKLIST_MONGO_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := os.Getenv("TASKLIST_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TASKLIST_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = Duration(parsed)
		}
	}
	if v := os.Getenv("TASKLIST_BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			cfg.Auth.BcryptCost = cost
		}
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
