package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Session SessionConfig
	Toast   ToastConfig
	Site    SiteConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
	// DurationMillis enables the extra millisecond request duration histogram
	DurationMillis bool
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type SessionConfig struct {
	CookieName    string
	CookieSecure  bool
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type ToastConfig struct {
	Capacity        int
	DefaultDuration time.Duration
	SuccessDuration time.Duration
}

type SiteConfig struct {
	Name string
	URL  string
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			DurationMillis:  getEnvBool("METRICS_DURATION_MS", false),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", true),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			CookieSecure:  getEnvBool("SESSION_COOKIE_SECURE", false),
			IdleTTL:       getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		Toast: ToastConfig{
			Capacity:        getEnvInt("TOAST_CAPACITY", 20),
			DefaultDuration: getEnvDuration("TOAST_DURATION", 4*time.Second),
			SuccessDuration: getEnvDuration("TOAST_SUCCESS_DURATION", 3*time.Second),
		},
		Site: SiteConfig{
			Name: getEnv("SITE_NAME", "Nibras Ahmed"),
			URL:  strings.TrimRight(getEnv("SITE_URL", "https://nibrasahmed.com"), "/"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
