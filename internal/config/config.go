package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config хранит все параметры приложения
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Server   ServerConfig   `yaml:"server"`
	Terminal TerminalConfig `yaml:"terminal"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
	UseTLS   bool   `yaml:"use_tls"`
}

type ServerConfig struct {
	Port          int `yaml:"port"`
	MaxConcurrent int `yaml:"max_concurrent"`
}

// TerminalConfig describes one order-taking terminal.
type TerminalConfig struct {
	Name       string `yaml:"name"`
	CategoryID int64  `yaml:"category_id"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable"},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		Server:   ServerConfig{Port: 3000, MaxConcurrent: 50},
		Terminal: TerminalConfig{Name: "terminal-1"},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults, then applies
// POS_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the configuration file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("POS_DB_HOST", &cfg.Database.Host)
	str("POS_DB_USER", &cfg.Database.User)
	str("POS_DB_PASSWORD", &cfg.Database.Password)
	str("POS_DB_NAME", &cfg.Database.Database)
	str("POS_RABBITMQ_HOST", &cfg.RabbitMQ.Host)
	str("POS_RABBITMQ_USER", &cfg.RabbitMQ.User)
	str("POS_RABBITMQ_PASSWORD", &cfg.RabbitMQ.Password)
	str("POS_TERMINAL_NAME", &cfg.Terminal.Name)

	if err := num("POS_DB_PORT", &cfg.Database.Port); err != nil {
		return err
	}
	if err := num("POS_RABBITMQ_PORT", &cfg.RabbitMQ.Port); err != nil {
		return err
	}
	if err := num("POS_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if v, ok := lookup("POS_TERMINAL_CATEGORY_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("POS_TERMINAL_CATEGORY_ID: %w", err)
		}
		cfg.Terminal.CategoryID = id
	}
	return nil
}

func (c *Config) ValidateDatabase() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
		return errors.New("database config incomplete")
	}
	return nil
}

func (c *Config) ValidateRabbitMQ() error {
	if c.RabbitMQ.Host == "" || c.RabbitMQ.User == "" {
		return errors.New("rabbitmq config incomplete")
	}
	return nil
}
