// Package config handles configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the avocare client configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Chat ChatConfig `toml:"chat"`
}

// APIConfig holds AvoCare service connection settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds one chat exchange.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ChatConfig holds chat session settings.
type ChatConfig struct {
	Language string `toml:"language"`
}

// Load reads configuration from .env, the config file, and environment.
func Load() (*Config, error) {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if p := os.Getenv("AVOCARE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(StateDir(), "config.toml")
}

// StateDir returns the avocare state directory.
func StateDir() string {
	if p := os.Getenv("AVOCARE_STATE_DIR"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".avocare")
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 30,
		},
		Chat: ChatConfig{
			Language: "english",
		},
	}
}

func (c *Config) applyEnv() {
	if url := os.Getenv("AVOCARE_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if lang := os.Getenv("AVOCARE_LANGUAGE"); lang != "" {
		c.Chat.Language = lang
	}
	if t := os.Getenv("AVOCARE_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			c.API.TimeoutSeconds = secs
		}
	}
}

// Save writes the config to file.
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// EnsureDirs creates necessary directories.
func EnsureDirs() error {
	if err := os.MkdirAll(StateDir(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", StateDir(), err)
	}
	return nil
}
