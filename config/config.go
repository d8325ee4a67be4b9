package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string
	Tinybird    TinybirdConfig
	Protection  ProtectionConfig
	Redis       RedisConfig
	GeoIP       GeoIPConfig
}

// TinybirdConfig holds the analytics backend connection settings
type TinybirdConfig struct {
	APIURL                string
	Token                 string
	ForwardTimeoutSeconds int // upper bound for the detached forward send
	QueryTimeoutSeconds   int // per-request timeout for dashboard pipe queries
}

// ProtectionConfig holds admission control settings. Admission runs only when
// Key is set and the deployment environment is not a local one; otherwise
// every request is admitted.
type ProtectionConfig struct {
	Key           string
	WindowSeconds int    // fixed rate-limit window length
	MaxRequests   int    // requests allowed per source IP per window
	Backend       string // "memory" or "redis"
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	Endpoint string
}

// GeoIPConfig holds the optional GeoLite2 database location
type GeoIPConfig struct {
	DatabasePath string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", ""),
		Tinybird: TinybirdConfig{
			APIURL:                getEnv("TINYBIRD_API_URL", "https://api.us-east.tinybird.co"),
			Token:                 getEnv("TINYBIRD_TOKEN", ""),
			ForwardTimeoutSeconds: getEnvAsInt("TINYBIRD_FORWARD_TIMEOUT_SECONDS", 5),
			QueryTimeoutSeconds:   getEnvAsInt("TINYBIRD_QUERY_TIMEOUT_SECONDS", 10),
		},
		Protection: ProtectionConfig{
			Key:           getEnv("PROTECTION_KEY", ""),
			WindowSeconds: getEnvAsInt("PROTECTION_WINDOW_SECONDS", 60),
			MaxRequests:   getEnvAsInt("PROTECTION_MAX_REQUESTS", 100),
			Backend:       getEnv("PROTECTION_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Endpoint: getEnv("REDIS_ENDPOINT", ""),
		},
		GeoIP: GeoIPConfig{
			DatabasePath: getEnv("GEOIP_DB_PATH", ""),
		},
	}
}

// IsLocal reports whether the deployment environment is a local/development
// one. An unset environment counts as local.
func (c *Config) IsLocal() bool {
	return c.Environment == "" || strings.EqualFold(c.Environment, "local")
}

// ProtectionEnabled reports whether admission control runs at all: a
// protection key is configured and the environment is not a local one.
func (c *Config) ProtectionEnabled() bool {
	return c.Protection.Key != "" && !c.IsLocal()
}

// UseRedisLimiter reports whether rate-limit counters should live in Redis
// instead of process memory.
func (p *ProtectionConfig) UseRedisLimiter() bool {
	return strings.EqualFold(p.Backend, "redis")
}

func (r *RedisConfig) GetRedisAddr() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return r.Host + ":" + r.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
