package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	DBPath          string

	// Reminders
	QuietHoursStart string // "HH:MM", local time
	QuietHoursEnd   string
	WebhookURL      string // optional; empty means stdout only

	LogLevel string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		DBPath:          getenvDefault("DB_PATH", "studydeck.db"),
		QuietHoursStart: getenvDefault("QUIET_HOURS_START", "22:00"),
		QuietHoursEnd:   getenvDefault("QUIET_HOURS_END", "07:00"),
		WebhookURL:      os.Getenv("REMINDER_WEBHOOK_URL"),
		LogLevel:        getenvDefault("LOG_LEVEL", "info"),
	}
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
