package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Secrets come from the environment;
// the YAML file carries everything safe to commit.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Notifications struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"notifications"`
	Reminders struct {
		Enabled        bool   `yaml:"enabled"`
		Cron           string `yaml:"cron"`
		GroupChatID    string `yaml:"group_chat_id"`
		LookaheadHours int    `yaml:"lookahead_hours"`
	} `yaml:"reminders"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Reminders.Cron = "0 9 * * *"
	cfg.Reminders.LookaheadHours = 24
	return cfg
}

// loadConfig reads the YAML config file; a missing file yields defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	return cfg, nil
}

func (c *Config) reminderLookahead() time.Duration {
	hours := c.Reminders.LookaheadHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
