package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Push delivery (FCM)
	FCMCredentialsFile string
	PushTimeout        time.Duration
	PushRateLimit      int

	// Reminder offsets: how long before an event's start each reminder fires.
	ReminderDaysBefore  []int
	ReminderHoursBefore []int

	// Days after an event's start before its notification is purged.
	RetentionDays int

	// Workers
	Workers         int
	PollInterval    time.Duration
	ReclaimInterval time.Duration
	// A claimed task older than ClaimTTL is assumed orphaned by a crash
	// and released for redelivery.
	ClaimTTL time.Duration
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 25)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 5)),

		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", "firebase-credentials.json"),
		PushTimeout:        getDuration("PUSH_TIMEOUT", 10*time.Second),
		PushRateLimit:      getInt("PUSH_RATE_LIMIT", 100),

		ReminderDaysBefore:  getIntList("REMINDER_DAYS_BEFORE", []int{3, 1}),
		ReminderHoursBefore: getIntList("REMINDER_HOURS_BEFORE", []int{3}),

		RetentionDays: getInt("NOTIFICATION_RETENTION_DAYS", 7),

		Workers:         getInt("WORKERS", 5),
		PollInterval:    getDuration("POLL_INTERVAL", 5*time.Second),
		ReclaimInterval: getDuration("RECLAIM_INTERVAL", 1*time.Minute),
		ClaimTTL:        getDuration("CLAIM_TTL", 5*time.Minute),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// getIntList parses a comma-separated list, e.g. REMINDER_DAYS_BEFORE="3,1".
// A malformed entry invalidates the whole variable and the default is kept.
func getIntList(key string, defaultVal []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return defaultVal
		}
		out = append(out, n)
	}
	return out
}
