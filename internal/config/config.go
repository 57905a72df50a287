package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Provider   ProviderConfig   `yaml:"provider"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	LogLevel   string           `yaml:"log_level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ProviderConfig points at the upstream price feed.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// DatabaseConfig configures the optional price cache. An empty URL disables
// caching entirely.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type SimulationConfig struct {
	StartingCapital float64 `yaml:"starting_capital"`
	DecideTimeout   string  `yaml:"decide_timeout"` // e.g. "5s", "250ms"
	PluginDir       string  `yaml:"plugin_dir"`
}

// ParseDecideTimeout converts the timeout string to a time.Duration. Empty
// disables the per-call budget.
func (sc SimulationConfig) ParseDecideTimeout() (time.Duration, error) {
	if sc.DecideTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(sc.DecideTimeout)
}

func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Provider: ProviderConfig{BaseURL: "https://www.alphavantage.co"},
		Simulation: SimulationConfig{
			StartingCapital: 100000,
			DecideTimeout:   "5s",
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that order. A .env file in the working directory
// is loaded best-effort first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)

	if _, err := cfg.Simulation.ParseDecideTimeout(); err != nil {
		return nil, fmt.Errorf("decide_timeout: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ALPHABACK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALPHABACK_PROVIDER_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("ALPHABACK_DB_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ALPHABACK_PLUGIN_DIR"); v != "" {
		cfg.Simulation.PluginDir = v
	}
	if v := os.Getenv("ALPHABACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
