package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service-level configuration: paths, endpoints and
// credentials. Per-run search settings are not here; the CLI builds those
// into an immutable SearchConfig value.
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Metrics server (serve mode)
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Data files
	CachePath    string
	TimetableDir string
	ReportPath   string

	// Flight search API
	KiwiBaseURL    string
	KiwiAPIKey     string
	KiwiTimeout    time.Duration
	KiwiRetryCount int

	// MongoDB trip archive, disabled when the URI is empty
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Postgres airport reference data, disabled when the DSN is empty
	PostgresDSN string

	// Gmail report delivery
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	ReportFrom        string
	ReportTo          string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		CachePath:    getEnv("CACHE_PATH", "observations.json"),
		TimetableDir: getEnv("TIMETABLE_DIR", "timetables"),
		ReportPath:   getEnv("REPORT_PATH", "flights.html"),

		KiwiBaseURL:    getEnv("KIWI_BASE_URL", "https://api.tequila.kiwi.com"),
		KiwiAPIKey:     getEnv("KIWI_API_KEY", ""),
		KiwiTimeout:    time.Duration(getEnvAsInt("KIWI_TIMEOUT", 60)) * time.Second,
		KiwiRetryCount: getEnvAsInt("KIWI_RETRY_COUNT", 2),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "farewatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		ReportFrom:        getEnv("REPORT_FROM", ""),
		ReportTo:          getEnv("REPORT_TO", ""),
	}

	return config, nil
}

// ArchiveEnabled reports whether the MongoDB trip archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.MongoURI != ""
}

// AirportDataEnabled reports whether airport reference data is configured.
func (c *Config) AirportDataEnabled() bool {
	return c.PostgresDSN != ""
}

// EmailConfigured reports whether all Gmail delivery settings are present.
func (c *Config) EmailConfigured() bool {
	return c.GmailClientID != "" && c.GmailClientSecret != "" &&
		c.GmailRefreshToken != "" && c.ReportFrom != "" && c.ReportTo != ""
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
