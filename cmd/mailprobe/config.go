package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the mailprobe configuration file
// (~/.config/mailprobe/config.yaml).
type Config struct {
	WindowSize *int     `yaml:"window_size"`
	RateLimit  *float64 `yaml:"rate_limit"`
	RateBurst  *int     `yaml:"rate_burst"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mailprobe", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file does
// not exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyFeaturesConfig fills in defaults from the config file for flags the
// user did not set on the command line.
func applyFeaturesConfig(c *cli.Command, cfg Config, window *int64) {
	if cfg.WindowSize != nil && !c.IsSet("window") {
		*window = int64(*cfg.WindowSize)
	}
}

// applyServeConfig fills in serve defaults from the config file.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, window *int64, rps *float64, burst *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.WindowSize != nil && !c.IsSet("window") {
		*window = int64(*cfg.WindowSize)
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*rps = *cfg.RateLimit
	}
	if cfg.RateBurst != nil && !c.IsSet("rate-burst") {
		*burst = int64(*cfg.RateBurst)
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
