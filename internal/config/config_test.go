package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseDriver:  "sqlite",
		ResolveAuthMode: ResolveAuthModeNone,
		CacheBackend:    "memory",
		RateLimitStore:  RateLimitStoreMemory,
		TokenLifetime:   24 * time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid defaults",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name: "valid redis stores",
			mutate: func(c *Config) {
				c.CacheBackend = "redis"
				c.RateLimitStore = RateLimitStoreRedis
			},
			expectError: false,
		},
		{
			name: "valid hmac mode with secret",
			mutate: func(c *Config) {
				c.ResolveAuthMode = ResolveAuthModeHMAC
				c.ResolveAuthSecret = "shared-secret"
			},
			expectError: false,
		},
		{
			name: "invalid database driver",
			mutate: func(c *Config) {
				c.DatabaseDriver = "mysql"
			},
			expectError: true,
			errorMsg:    `invalid DATABASE_DRIVER value: "mysql"`,
		},
		{
			name: "invalid resolve auth mode",
			mutate: func(c *Config) {
				c.ResolveAuthMode = "basic"
			},
			expectError: true,
			errorMsg:    `invalid RESOLVE_AUTH_MODE value: "basic"`,
		},
		{
			name: "simple mode without secret",
			mutate: func(c *Config) {
				c.ResolveAuthMode = ResolveAuthModeSimple
				c.ResolveAuthSecret = ""
			},
			expectError: true,
			errorMsg:    "RESOLVE_AUTH_SECRET is required when RESOLVE_AUTH_MODE=simple",
		},
		{
			name: "hmac mode without secret",
			mutate: func(c *Config) {
				c.ResolveAuthMode = ResolveAuthModeHMAC
				c.ResolveAuthSecret = ""
			},
			expectError: true,
			errorMsg:    "RESOLVE_AUTH_SECRET is required when RESOLVE_AUTH_MODE=hmac",
		},
		{
			name: "invalid cache backend",
			mutate: func(c *Config) {
				c.CacheBackend = "memcache"
			},
			expectError: true,
			errorMsg:    `invalid CACHE_BACKEND value: "memcache"`,
		},
		{
			name: "invalid rate limit store - typo",
			mutate: func(c *Config) {
				c.RateLimitStore = "reddis"
			},
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "reddis"`,
		},
		{
			name: "non-positive token lifetime",
			mutate: func(c *Config) {
				c.TokenLifetime = 0
			},
			expectError: true,
			errorMsg:    "invalid TOKEN_LIFETIME value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, ResolveAuthModeSimple, cfg.ResolveAuthMode)
	assert.Equal(t, "X-API-Secret", cfg.ResolveAuthHeader)
	assert.Equal(t, 3, cfg.ResolveMaxRetries)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 30*time.Second, cfg.ReferenceTTL)
	assert.Equal(t, 5*time.Minute, cfg.ProviderTTL)
	assert.True(t, cfg.CacheEnabled)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, RateLimitStoreMemory, cfg.RateLimitStore)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":3003")
	t.Setenv("TOKEN_LIFETIME", "1h")
	t.Setenv("RESOLVE_AUTH_MODE", "hmac")
	t.Setenv("RESOLVE_MAX_RETRIES", "5")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "100")

	cfg := Load()

	assert.Equal(t, ":3003", cfg.ServerAddr)
	assert.Equal(t, time.Hour, cfg.TokenLifetime)
	assert.Equal(t, ResolveAuthModeHMAC, cfg.ResolveAuthMode)
	assert.Equal(t, 5, cfg.ResolveMaxRetries)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TOKEN_LIFETIME", "soon")
	t.Setenv("BCRYPT_COST", "high")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 10, cfg.BcryptCost)
}
