// Package config reads the runtime configuration of the server from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envFile = ".env"

// Config holds every externally supplied setting of the server.
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	DatabaseURL string

	JWTSecret string
	JWTIssuer string

	CORSOrigins []string

	RateLimitWindow     time.Duration
	RateLimitMax        int
	AuthRateLimitWindow time.Duration
	AuthRateLimitMax    int
	RedisURL            string

	MailgunDomain string
	MailgunAPIKey string
	MailFrom      string
	ClientURL     string

	VerifyEmailMX bool
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the .env file if present and builds the configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTIssuer:           getEnv("JWT_ISSUER", "fitness-tracker"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000,http://localhost:4173")),
		RateLimitWindow:     getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:        getInt("RATE_LIMIT_MAX", 100),
		AuthRateLimitWindow: getDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
		AuthRateLimitMax:    getInt("AUTH_RATE_LIMIT_MAX", 100),
		RedisURL:            os.Getenv("REDIS_URL"),
		MailgunDomain:       os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:       os.Getenv("MAILGUN_API_KEY"),
		MailFrom:            getEnv("MAIL_FROM", "Fitness Tracker <no-reply@fitness-tracker.local>"),
		ClientURL:           getEnv("CLIENT_URL", "http://localhost:5173"),
		VerifyEmailMX:       getBool("VERIFY_EMAIL_MX", false),
	}

	databaseURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = databaseURL

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the discrete DB_* variables.
func databaseURL() (string, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}

	var (
		dbHost     = os.Getenv("DB_HOST")
		dbPort     = os.Getenv("DB_PORT")
		dbUser     = os.Getenv("DB_USER")
		dbPassword = os.Getenv("DB_PASS")
		dbName     = os.Getenv("DB_NAME")
	)

	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		return "", fmt.Errorf("database environment variables not set")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
