package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8000"

type Config struct {
	ServerPort     string
	APIURL         string
	BackendTimeout time.Duration
	DashboardURL   string
	RabbitURL      string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	port := getEnv("SERVER_PORT", "8080")

	timeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "120s"))
	if err != nil {
		log.Printf("invalid BACKEND_TIMEOUT, using 120s: %v", err)
		timeout = 120 * time.Second
	}

	return &Config{
		ServerPort:     port,
		APIURL:         getEnv("API_URL", defaultAPIURL),
		BackendTimeout: timeout,
		DashboardURL:   getEnv("DASHBOARD_URL", "http://localhost:"+port),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "events_dashboard"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
	}
}

// HistoryEnabled reports whether refresh runs should be persisted.
func (c *Config) HistoryEnabled() bool {
	return c.DBHost != ""
}

// MessagingEnabled reports whether a broker is configured.
func (c *Config) MessagingEnabled() bool {
	return c.RabbitURL != ""
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
