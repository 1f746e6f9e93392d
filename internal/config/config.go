package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from YAML with
// environment overrides for the values that differ between deployments.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Suggest  SuggestConfig  `yaml:"suggest"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP listener settings. Metrics are served from a
// separate address so the app port stays private to the household network.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MetricsAddr  string        `yaml:"metrics_addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the store backend: sqlite3 with a file path, or
// postgres with a DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SuggestConfig tunes the suggestion engine.
type SuggestConfig struct {
	ExpiryHorizonDays int `yaml:"expiry_horizon_days"`
}

// LogConfig controls zap.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			MetricsAddr:  ":9090",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "larder.db",
		},
		Suggest: SuggestConfig{
			ExpiryHorizonDays: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error — defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LARDER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LARDER_METRICS_ADDR"); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := os.Getenv("LARDER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("LARDER_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LARDER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q (want sqlite3 or postgres)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Suggest.ExpiryHorizonDays <= 0 {
		return fmt.Errorf("suggest expiry horizon must be positive, got %d", c.Suggest.ExpiryHorizonDays)
	}
	return nil
}
