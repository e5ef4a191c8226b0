// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// ViesConfig provides settings for the outbound VIES SOAP client.
type ViesConfig interface {
	GetViesURL() string
	GetViesTimeout() time.Duration
}

// ReportConfig provides settings for report copies written to disk.
type ReportConfig interface {
	GetReportsDir() string
	GetReportTTL() time.Duration
}

// CacheConfig provides settings for the redis result cache.
type CacheConfig interface {
	GetRedisURL() string
	GetCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq cleanup worker.
type SchedulerConfig interface {
	ReportConfig
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetHistoryRetention() time.Duration
}

// =============================================================================
// Config struct and loading
// =============================================================================

// DefaultViesURL is the production endpoint of the EU VIES checkVat service.
const DefaultViesURL = "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	RedisURL         string
	ViesURL          string
	ViesTimeout      time.Duration
	ReportsDir       string
	ReportTTL        time.Duration
	CacheTTL         time.Duration
	CORSAllowAll     bool
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	HistoryRetention time.Duration
	AsynqQueue       string
	AsynqConcurrency int
}

// Load reads configuration from the environment, consulting a .env file when
// one is present. Missing keys fall back to development defaults; the fixed
// VIES endpoint is only overridden when VIES_URL is set explicitly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		ViesURL:          getEnv("VIES_URL", DefaultViesURL),
		ViesTimeout:      getDuration("VIES_TIMEOUT", 10*time.Second),
		ReportsDir:       getEnv("REPORTS_DIR", ""),
		ReportTTL:        getDuration("REPORT_TTL", 24*time.Hour),
		CacheTTL:         getDuration("CACHE_TTL", 15*time.Minute),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		RateLimitRPS:     getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 5),
		HistoryRetention: getDuration("HISTORY_RETENTION_DAYS", 90*24*time.Hour),
		AsynqQueue:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: getInt("ASYNQ_CONCURRENCY", 10),
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string             { return c.DatabaseURL }
func (c *Config) GetHTTPAddr() string                { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool              { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string           { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64           { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int             { return c.RateLimitBurst }
func (c *Config) GetViesURL() string                 { return c.ViesURL }
func (c *Config) GetViesTimeout() time.Duration      { return c.ViesTimeout }
func (c *Config) GetReportsDir() string              { return c.ReportsDir }
func (c *Config) GetReportTTL() time.Duration        { return c.ReportTTL }
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetCacheTTL() time.Duration         { return c.CacheTTL }
func (c *Config) GetAsynqQueueName() string          { return c.AsynqQueue }
func (c *Config) GetAsynqConcurrency() int           { return c.AsynqConcurrency }
func (c *Config) GetHistoryRetention() time.Duration { return c.HistoryRetention }

// Helpers.

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

// getDuration parses values like "10s" or "24h". Bare integers are treated
// as whole days for retention-style knobs.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if days, err := strconv.Atoi(raw); err == nil {
		return time.Duration(days) * 24 * time.Hour
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
