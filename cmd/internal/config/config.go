package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StoreMemory   = "memory"
	StoreDatabase = "database"
)

type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBDSN    string

	VapidPublicKey  string
	VapidPrivateKey string
	VapidSubject    string

	PushTTL       time.Duration
	PushWorkers   int
	PushQueueSize int

	SubscriptionStore string
	LoginRateLimit    float64
}

// Load reads the process configuration. A .env file in the working
// directory is honoured when present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to read .env file: %v", err)
	}

	return &Config{
		Port:              env("PORT", "3002"),
		LogLevel:          env("LOG_LEVEL", "info"),
		DBDriver:          strings.ToLower(env("DB_DRIVER", DriverSQLite)),
		DBDSN:             env("DB_DSN", "./agenda.db"),
		VapidPublicKey:    os.Getenv("VAPID_PUBLIC_KEY"),
		VapidPrivateKey:   os.Getenv("VAPID_PRIVATE_KEY"),
		VapidSubject:      env("VAPID_SUBJECT", "mailto:admin@agenda.local"),
		PushTTL:           time.Duration(envInt("PUSH_TTL", 60)) * time.Second,
		PushWorkers:       envInt("PUSH_WORKERS", 2),
		PushQueueSize:     envInt("PUSH_QUEUE_SIZE", 64),
		SubscriptionStore: strings.ToLower(env("SUBSCRIPTION_STORE", StoreMemory)),
		LoginRateLimit:    envFloat("LOGIN_RATE_LIMIT", 5),
	}
}

// GommonLevel maps LOG_LEVEL onto the gommon logger levels.
func (c *Config) GommonLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := env(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Warnf("ignoring invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	raw := env(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Warnf("ignoring invalid %s=%q, using %v", key, raw, fallback)
		return fallback
	}
	return v
}
