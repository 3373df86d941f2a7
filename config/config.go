package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Engine      EngineConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

// EngineConfig holds the scheduling engine's knobs. The TTLs cover the
// read-through cache (mostly-static entities vs. fast-changing appointments);
// StoreTimeout bounds every persistent-store call so a slow store cannot hang
// a live phone call; RefreshDelay is the coalescer's quiet period.
type EngineConfig struct {
	StaticCacheTTL      time.Duration
	AppointmentCacheTTL time.Duration
	StoreTimeout        time.Duration
	RefreshDelay        time.Duration
}

func NewConfig() (*Config, error) {
	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	staticTTL, err := time.ParseDuration(getEnv("ENGINE_STATIC_CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}

	appointmentTTL, err := time.ParseDuration(getEnv("ENGINE_APPOINTMENT_CACHE_TTL", "2m"))
	if err != nil {
		return nil, err
	}

	storeTimeout, err := time.ParseDuration(getEnv("ENGINE_STORE_TIMEOUT", "3s"))
	if err != nil {
		return nil, err
	}

	refreshDelay, err := time.ParseDuration(getEnv("ENGINE_REFRESH_DELAY", "2s"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "frontdesk"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "frontdesk"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		Engine: EngineConfig{
			StaticCacheTTL:      staticTTL,
			AppointmentCacheTTL: appointmentTTL,
			StoreTimeout:        storeTimeout,
			RefreshDelay:        refreshDelay,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}
