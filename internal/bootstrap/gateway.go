package bootstrap

import (
	"encoding/json"
	"log"

	"github.com/nyomansunima/federation-service/internal/client"
	"github.com/nyomansunima/federation-service/internal/config"
	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/gateway"
	"github.com/nyomansunima/federation-service/internal/metrics"
	"github.com/nyomansunima/federation-service/internal/middleware"
	"github.com/nyomansunima/federation-service/internal/token"

	"github.com/gin-gonic/gin"
)

// RunGateway starts the composition gateway: the single public entry
// point that forwards partition traffic and stitches the /v1/session view
// out of both partitions.
func RunGateway(cfg *config.Config) error {
	recorder := metrics.Init(cfg.MetricsEnabled)
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenLifetime)

	retryClient, err := client.CreateRetryClient(
		cfg.ResolveAuthMode,
		cfg.ResolveAuthSecret,
		cfg.ResolveAuthHeader,
		cfg.ResolveTimeout,
		cfg.ResolveMaxRetries,
		cfg.ResolveRetryDelay,
		cfg.ResolveMaxRetryDelay,
	)
	if err != nil {
		return err
	}

	refCache, refCacheCloser := newCache[json.RawMessage](cfg, "gateway:ref:")

	userResolver := federation.NewRemoteResolver(
		cfg.AuthServiceURL, retryClient, refCache, cfg.ReferenceTTL)
	appResolver := federation.NewRemoteResolver(
		cfg.MasterServiceURL, retryClient, refCache, cfg.ReferenceTTL)

	composer := gateway.NewComposer(codec, userResolver, appResolver)

	r := newRouter(cfg, recorder)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	rateLimiter, err := setupRateLimiter(cfg)
	if err != nil {
		return err
	}

	v1 := r.Group("/v1")
	if rateLimiter != nil {
		v1.Use(rateLimiter)
	}
	{
		v1.GET("/session", composer.Session)
		v1.POST("/resolve", composer.Resolve)
	}

	if err := setupPartitionProxies(r, cfg, rateLimiter); err != nil {
		return err
	}

	log.Printf("Gateway starting on %s", cfg.ServerAddr)
	log.Printf("  identity partition: %s", cfg.AuthServiceURL)
	log.Printf("  application partition: %s", cfg.MasterServiceURL)

	srv := createHTTPServer(cfg, r)
	serveWithGracefulShutdown(srv, map[string]func() error{
		"reference": refCacheCloser,
	})
	return nil
}

// setupRateLimiter builds the configured rate limiter, or nil when rate
// limiting is disabled.
func setupRateLimiter(cfg *config.Config) (gin.HandlerFunc, error) {
	if !cfg.RateLimitEnabled {
		return nil, nil
	}

	if cfg.RateLimitStore == config.RateLimitStoreRedis {
		return middleware.NewRedisRateLimiter(
			cfg.RateLimitPerMinute, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return middleware.NewMemoryRateLimiter(cfg.RateLimitPerMinute)
}

// setupPartitionProxies mounts the pass-through routes. Every inbound
// header travels to the partition unchanged, so the partitions see the
// caller's Authorization header directly.
func setupPartitionProxies(
	r *gin.Engine,
	cfg *config.Config,
	rateLimiter gin.HandlerFunc,
) error {
	authProxy, err := gateway.NewPartitionProxy(cfg.AuthServiceURL)
	if err != nil {
		return err
	}
	masterProxy, err := gateway.NewPartitionProxy(cfg.MasterServiceURL)
	if err != nil {
		return err
	}

	mount := func(path string, proxy gin.HandlerFunc) {
		group := r.Group(path)
		if rateLimiter != nil {
			group.Use(rateLimiter)
		}
		group.Any("", proxy)
		group.Any("/*path", proxy)
	}

	mount("/auth", authProxy)
	mount("/users", authProxy)
	mount("/providers", authProxy)
	mount("/apps", masterProxy)
	mount("/app-types", masterProxy)

	return nil
}
