package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Resolve handshake authentication mode constants
const (
	ResolveAuthModeNone   = "none"   // No authentication (local development only)
	ResolveAuthModeSimple = "simple" // Shared secret in header
	ResolveAuthModeHMAC   = "hmac"   // HMAC-SHA256 request signature
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr string
	BaseURL    string

	// Token settings. Both are process-wide, loaded once at startup and
	// never hot-reloaded; the codec receives them explicitly.
	JWTSecret     string
	TokenLifetime time.Duration

	// Password hashing
	BcryptCost int

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// Peer services (consumed by the gateway)
	AuthServiceURL   string
	MasterServiceURL string

	// Resolve handshake: authentication between the gateway and the
	// subgraph /internal/resolve endpoints
	ResolveAuthMode      string // "none", "simple", or "hmac"
	ResolveAuthSecret    string // Shared secret
	ResolveAuthHeader    string // Header name for simple mode
	ResolveTimeout       time.Duration
	ResolveMaxRetries    int
	ResolveRetryDelay    time.Duration
	ResolveMaxRetryDelay time.Duration

	// Cache
	CacheBackend  string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ReferenceTTL  time.Duration // TTL for cached resolved references
	ProviderTTL   time.Duration // TTL for cached active-provider lookups
	CacheEnabled  bool

	// Rate limiting (gateway)
	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitStore     string // "memory" or "redis"

	// Metrics
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:8080"),

		JWTSecret:     getEnv("JWT_SECRET_KEY", "your-256-bit-secret-change-in-production"),
		TokenLifetime: getEnvDuration("TOKEN_LIFETIME", 24*time.Hour),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "federation.db"),

		AuthServiceURL:   getEnv("AUTH_SERVICE_URL", "http://localhost:3003"),
		MasterServiceURL: getEnv("MASTER_SERVICE_URL", "http://localhost:3002"),

		ResolveAuthMode:      getEnv("RESOLVE_AUTH_MODE", ResolveAuthModeSimple),
		ResolveAuthSecret:    getEnv("RESOLVE_AUTH_SECRET", ""),
		ResolveAuthHeader:    getEnv("RESOLVE_AUTH_HEADER", "X-API-Secret"),
		ResolveTimeout:       getEnvDuration("RESOLVE_TIMEOUT", 10*time.Second),
		ResolveMaxRetries:    getEnvInt("RESOLVE_MAX_RETRIES", 3),
		ResolveRetryDelay:    getEnvDuration("RESOLVE_RETRY_DELAY", 1*time.Second),
		ResolveMaxRetryDelay: getEnvDuration("RESOLVE_MAX_RETRY_DELAY", 10*time.Second),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		ReferenceTTL:  getEnvDuration("REFERENCE_TTL", 30*time.Second),
		ProviderTTL:   getEnvDuration("PROVIDER_TTL", 5*time.Minute),
		CacheEnabled:  getEnvBool("CACHE_ENABLED", true),

		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
		RateLimitStore:     getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
	}
}

// Validate checks configuration values that cannot be defaulted away.
// It is called once at startup; a failure here is fatal.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER value: %q (must be %q or %q)",
			c.DatabaseDriver, "sqlite", "postgres")
	}

	switch c.ResolveAuthMode {
	case ResolveAuthModeNone:
	case ResolveAuthModeSimple, ResolveAuthModeHMAC:
		if c.ResolveAuthSecret == "" {
			return fmt.Errorf("RESOLVE_AUTH_SECRET is required when RESOLVE_AUTH_MODE=%s",
				c.ResolveAuthMode)
		}
	default:
		return fmt.Errorf("invalid RESOLVE_AUTH_MODE value: %q (must be %q, %q, or %q)",
			c.ResolveAuthMode, ResolveAuthModeNone, ResolveAuthModeSimple, ResolveAuthModeHMAC)
	}

	switch c.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid CACHE_BACKEND value: %q (must be %q or %q)",
			c.CacheBackend, "memory", "redis")
	}

	switch c.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis)
	}

	if c.TokenLifetime <= 0 {
		return fmt.Errorf("invalid TOKEN_LIFETIME value: %s (must be positive)", c.TokenLifetime)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
