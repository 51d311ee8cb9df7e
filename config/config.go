package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"seat-booking/logger"
)

// Config carries every process-wide setting. It is loaded once in main and
// passed explicitly to the pieces that need it; nothing reads the environment
// after startup.
type Config struct {
	AppHost string
	AppPort string

	FrontendURL string

	DBHost     string
	DBPort     string
	DBDatabase string
	DBUsername string
	DBPassword string
	DBSSLMode  string

	JWTSecret   string
	TokenExpiry time.Duration

	GoogleClientID string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

// Load reads the .env file (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded, relying on environment")
	}

	cfg := &Config{
		AppHost:        os.Getenv("APP_HOST"),
		AppPort:        getEnv("APP_PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBDatabase:     os.Getenv("DB_DATABASE"),
		DBUsername:     os.Getenv("DB_USERNAME"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenExpiry:    time.Hour,
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       587,
		SMTPUser:       os.Getenv("EMAIL_USER"),
		SMTPPassword:   os.Getenv("EMAIL_APP_PASSWORD"),
		MailFrom:       os.Getenv("EMAIL_USER"),
	}

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", portStr, err)
		}
		cfg.SMTPPort = port
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUsername, c.DBPassword, c.DBDatabase, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
