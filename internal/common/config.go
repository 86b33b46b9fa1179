// Package common provides shared configuration, logging, and version
// utilities for the Anti-Gravity server.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultWatchlist is the set of volatile / popular tickers scanned for
// pre-market movement when no watchlist is configured. Order matters: it is
// the tie-break order for equal-magnitude gaps.
var DefaultWatchlist = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AMD",
	"NFLX", "INTC", "BA", "DIS", "PLTR", "SOFI", "RIVN", "LCID",
	"NIO", "COIN", "MARA", "RIOT", "SQ", "SNAP", "UBER", "PYPL",
	"ROKU", "SHOP", "CRWD", "SNOW", "DKNG", "ABNB",
}

// Config holds all configuration for the Anti-Gravity server.
type Config struct {
	Environment string        `toml:"environment"`
	Watchlist   []string      `toml:"watchlist"`
	Server      ServerConfig  `toml:"server"`
	Cache       CacheConfig   `toml:"cache"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CacheConfig holds the last-known-good snapshot configuration.
type CacheConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations.
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance API configuration.
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration.
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Watchlist:   append([]string(nil), DefaultWatchlist...),
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Cache: CacheConfig{
			Path: "data/movers_cache.json",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "10s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if len(config.Watchlist) == 0 {
		config.Watchlist = append([]string(nil), DefaultWatchlist...)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ANTIGRAVITY_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("ANTIGRAVITY_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("ANTIGRAVITY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("ANTIGRAVITY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("ANTIGRAVITY_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}

	if list := os.Getenv("ANTIGRAVITY_WATCHLIST"); list != "" {
		var symbols []string
		for _, s := range strings.Split(list, ",") {
			s = strings.ToUpper(strings.TrimSpace(s))
			if s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) > 0 {
			config.Watchlist = symbols
		}
	}

	if base := os.Getenv("ANTIGRAVITY_YAHOO_BASE_URL"); base != "" {
		config.Clients.Yahoo.BaseURL = base
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
