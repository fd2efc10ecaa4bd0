package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// SMTP configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	// LLM API configuration
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Frontend base URL used in confirmation and reset links
	FrontendURL string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets and then to defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "server_port", "8080"),
		ServerHost: getValue("SERVER_HOST", "server_host", "0.0.0.0"),

		DBHost:     getValue("DB_HOST", "db_host", "localhost"),
		DBPort:     getValue("DB_PORT", "db_port", "5432"),
		DBUser:     getValue("DB_USER", "db_user", "postgres"),
		DBPassword: getValue("DB_PASSWORD", "db_password", "postgres"),
		DBName:     getValue("DB_NAME", "db_name", "chefbot"),
		DBSSLMode:  getValue("DB_SSL_MODE", "db_ssl_mode", "disable"),

		RedisHost:     getValue("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getValue("REDIS_URL", "redis_url", ""),

		JWTSecret: getValue("JWT_SECRET", "jwt_secret", ""),

		SMTPHost:     getValue("SMTP_HOST", "smtp_host", ""),
		SMTPPort:     getValue("SMTP_PORT", "smtp_port", "587"),
		SMTPUsername: getValue("SMTP_USERNAME", "smtp_username", ""),
		SMTPPassword: getValue("SMTP_PASSWORD", "smtp_password", ""),
		FromEmail:    getValue("EMAIL_FROM", "email_from", "no.reply.chefbot@gmail.com"),
		FromName:     getValue("EMAIL_FROM_NAME", "email_from_name", "ChefBot"),

		LLMAPIKey: getValue("LLM_API_KEY", "llm_api_key", ""),
		LLMAPIURL: getValue("LLM_API_URL", "llm_api_url", "https://api.openai.com/v1/chat/completions"),
		LLMModel:  getValue("LLM_MODEL", "llm_model", "gpt-4o-mini"),

		FrontendURL: getValue("FRONTEND_URL", "frontend_url", "http://localhost:5173"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getValue resolves a configuration value from an environment variable,
// then a Docker secret, then a default.
func getValue(envName, secretName, fallback string) string {
	if value := os.Getenv(envName); value != "" {
		return value
	}
	if value := readSecret(secretName); value != "" {
		return value
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
