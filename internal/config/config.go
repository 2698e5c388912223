package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Query    QueryConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	InstanceId         string
}

// DatabaseConfig leaves Connection empty to run on seeded in-memory
// repositories.
type DatabaseConfig struct {
	Connection string
}

type CacheConfig struct {
	Driver   string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

type QueryConfig struct {
	SearchDebounce  time.Duration
	AdminPageSize   int
	PublicPageSize  int
	BulkConcurrency int
	DefaultLang     string
	SessionTTL      time.Duration
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	host, _ := os.Hostname()
	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			InstanceId:         getEnv("INSTANCE_ID", host),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Cache: CacheConfig{
			Driver:   strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Query: QueryConfig{
			SearchDebounce:  getEnvAsDuration("QUERY_SEARCH_DEBOUNCE", 300*time.Millisecond),
			AdminPageSize:   getEnvAsInt("QUERY_ADMIN_PAGE_SIZE", 10),
			PublicPageSize:  getEnvAsInt("QUERY_PUBLIC_PAGE_SIZE", 9),
			BulkConcurrency: getEnvAsInt("QUERY_BULK_CONCURRENCY", 8),
			DefaultLang:     getEnv("QUERY_DEFAULT_LANG", "vi"),
			SessionTTL:      getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "portfolio-cms-be"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
