package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/nyomansunima/federation-service/internal/cache"
	"github.com/nyomansunima/federation-service/internal/config"
	"github.com/nyomansunima/federation-service/internal/core"
)

// newCache builds the configured cache backend for one value type. It
// returns a nil cache when caching is disabled; callers treat nil as
// cache-off. The closer is non-nil only when there is a connection to
// release.
func newCache[T any](cfg *config.Config, keyPrefix string) (core.Cache[T], func() error) {
	if !cfg.CacheEnabled {
		return nil, nil
	}

	if cfg.CacheBackend == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRueidisCache[T](
			ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, keyPrefix)
		if err != nil {
			log.Printf("Redis cache unavailable, falling back to memory: %v", err)
			return cache.NewMemoryCache[T](), nil
		}
		return redisCache, redisCache.Close
	}

	return cache.NewMemoryCache[T](), nil
}
