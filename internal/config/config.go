package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration for the client and the dev rate server.
type Config struct {
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"backend"`
	CoinGecko struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"coingecko"`
	Converter struct {
		Debounce      time.Duration `yaml:"debounce"`
		PriceInterval time.Duration `yaml:"price_interval"`
	} `yaml:"converter"`
	History struct {
		Interval   time.Duration `yaml:"interval"`
		RangeHours int           `yaml:"range_hours"`
	} `yaml:"history"`
	Server struct {
		Listen          string        `yaml:"listen"`
		SQLitePath      string        `yaml:"sqlite_path"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		InitialDelay    time.Duration `yaml:"initial_delay"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then a .env file, then applies environment
// variable overrides and defaults. Missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Server.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Converter.Debounce = time.Duration(ms) * time.Millisecond
		}
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8080"
	}
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com"
	}
	if cfg.Converter.Debounce == 0 {
		cfg.Converter.Debounce = 800 * time.Millisecond
	}
	if cfg.Converter.PriceInterval == 0 {
		cfg.Converter.PriceInterval = 30 * time.Second
	}
	if cfg.History.Interval == 0 {
		cfg.History.Interval = 5 * time.Minute
	}
	if cfg.History.RangeHours == 0 {
		cfg.History.RangeHours = 24
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.SQLitePath == "" {
		cfg.Server.SQLitePath = "data/rates.db"
	}
	if cfg.Server.RefreshInterval == 0 {
		cfg.Server.RefreshInterval = 5 * time.Minute
	}
	if cfg.Server.InitialDelay == 0 {
		cfg.Server.InitialDelay = 10 * time.Second
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.Timeout < 0 || c.CoinGecko.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.Converter.Debounce <= 0 {
		return fmt.Errorf("converter.debounce must be positive")
	}
	if c.Converter.PriceInterval < time.Second {
		return fmt.Errorf("converter.price_interval must be at least 1s")
	}
	if c.History.Interval < time.Second {
		return fmt.Errorf("history.interval must be at least 1s")
	}
	if c.History.RangeHours <= 0 {
		return fmt.Errorf("history.range_hours must be positive")
	}
	if c.Server.RefreshInterval < time.Second {
		return fmt.Errorf("server.refresh_interval must be at least 1s")
	}
	return nil
}
