package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"renshu/internal/storage"
)

// Config holds CLI-wide settings: where the database lives, which user's
// documents to operate on, and log verbosity.
type Config struct {
	DB   DBConfig  `yaml:"db"`
	User string    `yaml:"user"`
	Log  LogConfig `yaml:"log"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Env wins over file, file over defaults.
func Load() (Config, error) {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DB:   DBConfig{Path: dbPath},
		User: "local",
		Log:  LogConfig{Level: "warn"},
	}

	if path := os.Getenv("RENSHU_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if p := os.Getenv("RENSHU_DB_PATH"); p != "" {
		cfg.DB.Path = p
	}
	if u := os.Getenv("RENSHU_USER"); u != "" {
		cfg.User = u
	}
	if l := os.Getenv("RENSHU_LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
