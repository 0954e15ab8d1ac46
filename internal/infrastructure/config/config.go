package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (imported email store)
	MongoURI string
	MongoDB  string

	// PostgreSQL (trips, itinerary, expenses, reminders)
	PostgresDSN string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailPollInterval time.Duration

	// Currency conversion
	CurrencyAPIBase  string
	CurrencyCacheTTL time.Duration

	// Reminders
	ReminderInterval time.Duration

	// Import
	ImportInterval  time.Duration
	ImportBatchSize int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "travella"),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=travella dbname=travella sslmode=disable"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailPollInterval: time.Duration(getEnvAsInt("GMAIL_POLL_INTERVAL", 60)) * time.Second,

		CurrencyAPIBase:  getEnv("CURRENCY_API_BASE", "https://api.frankfurter.app"),
		CurrencyCacheTTL: time.Duration(getEnvAsInt("CURRENCY_CACHE_TTL_MINUTES", 30)) * time.Minute,

		ReminderInterval: time.Duration(getEnvAsInt("REMINDER_INTERVAL", 60)) * time.Second,

		ImportInterval:  time.Duration(getEnvAsInt("IMPORT_INTERVAL", 30)) * time.Second,
		ImportBatchSize: getEnvAsInt("IMPORT_BATCH_SIZE", 100),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
