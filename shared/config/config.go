package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube YouTubeConfig `yaml:"youtube"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type YouTubeConfig struct {
	APIKey      string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	MaxComments int64  `yaml:"max_comments"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type StorageConfig struct {
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	// A missing config file is fine; env-only deployments are supported.

	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = os.Getenv("DATABASE_PATH")
	}

	if cfg.YouTube.MaxComments == 0 {
		cfg.YouTube.MaxComments = 100
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YOUTUBE_API_KEY or youtube.api_key)")
	}
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("database path is required (set DATABASE_PATH or storage.database_path)")
	}
	if c.YouTube.MaxComments < 1 || c.YouTube.MaxComments > 100 {
		return fmt.Errorf("youtube.max_comments must be between 1 and 100, got %d", c.YouTube.MaxComments)
	}
	return nil
}
