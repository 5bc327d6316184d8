package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Dsn builds the Postgres connection string.
func (d DatabaseConfig) Dsn() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type ResendConfig struct {
	APIKey     string `yaml:"api_key"`
	FromEmail  string `yaml:"from_email"`
	AlertEmail string `yaml:"alert_email"`
}

type Config struct {
	Port      string         `yaml:"port"`
	JWTSecret string         `yaml:"jwt_secret"`
	Database  DatabaseConfig `yaml:"database"`
	Resend    ResendConfig   `yaml:"resend"`
}

// Load builds the configuration from defaults, an optional YAML file
// (path typically comes from CONFIG_PATH) and finally the environment.
// Environment variables always win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port: "8080",
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "marketrate",
			SSLMode: "disable",
		},
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Resend.APIKey = getEnv("RESEND_API_KEY", cfg.Resend.APIKey)
	cfg.Resend.FromEmail = getEnv("FROM_EMAIL", cfg.Resend.FromEmail)
	cfg.Resend.AlertEmail = getEnv("ALERT_EMAIL", cfg.Resend.AlertEmail)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
