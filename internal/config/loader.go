package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"obsui/pkg/router"
)

// Defaults applied by WithDefaults.
const (
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
	DefaultStoreKind  = "memory"
	DefaultStorageKey = "toDoList"
	DefaultStartURL   = "/"
)

// EnvPrefix prefixes every environment variable read by ParseEnv.
const EnvPrefix = "OBSUI_"

// StoreConfig selects where the todo list is persisted.
type StoreConfig struct {
	// Kind is one of memory, file, sqlite, postgres.
	Kind string `json:"kind" yaml:"kind" toml:"kind" env:"KIND"`
	// DSN is a directory for file, a path for sqlite, a connection string for postgres.
	DSN string `json:"dsn" yaml:"dsn" toml:"dsn" env:"DSN"`
	// Key is the storage key the list is saved under.
	Key string `json:"key" yaml:"key" toml:"key" env:"KEY"`
}

// RouterConfig configures the headless router of the todo app.
type RouterConfig struct {
	Root    string `json:"root" yaml:"root" toml:"root" env:"ROOT"`
	UseHash bool   `json:"use_hash" yaml:"use_hash" toml:"use_hash" env:"USE_HASH"`
	// StartURL is the location the headless browser opens.
	StartURL string `json:"start_url" yaml:"start_url" toml:"start_url" env:"START_URL"`
}

// CORSConfig enables CORS on the HTTP API.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins" env:"ORIGINS"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods" env:"METHODS"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers" env:"HEADERS"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr     string       `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	LogLevel string       `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	Store    StoreConfig  `json:"store" yaml:"store" toml:"store" envPrefix:"STORE_"`
	Router   RouterConfig `json:"router" yaml:"router" toml:"router" envPrefix:"ROUTER_"`
	CORS     CORSConfig   `json:"cors" yaml:"cors" toml:"cors" envPrefix:"CORS_"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ParseEnv overlays OBSUI_* environment variables onto cfg. Unset variables
// leave fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// WithDefaults returns cfg with unspecified fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Store.Kind == "" {
		c.Store.Kind = DefaultStoreKind
	}
	if c.Store.Key == "" {
		c.Store.Key = DefaultStorageKey
	}
	if c.Router.StartURL == "" {
		c.Router.StartURL = DefaultStartURL
	}
	return c
}

// RouterStart converts the router section for router.Start.
func (c Config) RouterStart() router.Config {
	return router.Config{Root: c.Router.Root, UseHash: c.Router.UseHash}
}
