package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	APIKey         string
	Port           string
	ResendAPIKey   string
	MailFrom       string
	AllowedOrigins string
	TrustedProxies string
	AppEnv         string
	LogLevel       string
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "eatsmart"),
		DBPassword:     getEnv("DB_PASSWORD", "eatsmart_pass"),
		DBName:         getEnv("DB_NAME", "eatsmart"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		APIKey:         getEnv("API_KEY", ""),
		Port:           getEnv("PORT", "8080"),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		MailFrom:       getEnv("MAIL_FROM", "Eat Smart <no-reply@eatsmart.app>"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		TrustedProxies: getEnv("TRUSTED_PROXIES", ""),
		AppEnv:         normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&clientFoundRows=true"
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
