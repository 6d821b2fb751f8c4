package liftlog

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the bot service
type Config struct {
	ListenAddr      string
	TableName       string
	SecretName      string
	RecentLimit     int           // Default number of entries shown by /recent.
	ShutdownTimeout time.Duration // Grace period for in-flight webhook calls.
	Debug           bool
}

// LoadConfig reads environment variables into Config, applying defaults for local dev
func LoadConfig() Config {
	return Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
		TableName:       getEnv("WORKOUTS_TABLE", "workout_entries"),
		SecretName:      getEnv("BOT_SECRET_NAME", "liftlog/telegram"),
		RecentLimit:     getIntEnv("RECENT_LIMIT", 5),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
		Debug:           getBoolEnv("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
