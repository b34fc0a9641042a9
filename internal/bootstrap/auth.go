package bootstrap

import (
	"log"

	"github.com/nyomansunima/federation-service/internal/config"
	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/handlers"
	"github.com/nyomansunima/federation-service/internal/metrics"
	"github.com/nyomansunima/federation-service/internal/middleware"
	"github.com/nyomansunima/federation-service/internal/models"
	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"
	"github.com/nyomansunima/federation-service/internal/token"

	"github.com/gin-gonic/gin"
)

// RunAuth starts the identity partition service: signup, token
// validation, user and provider management, and the UserPayload side of
// the resolve handshake.
func RunAuth(cfg *config.Config) error {
	authStore, err := store.NewAuthStore(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	r, cacheClosers := newAuthRouter(cfg, authStore)

	log.Printf("Identity service starting on %s", cfg.ServerAddr)

	srv := createHTTPServer(cfg, r)
	serveWithGracefulShutdown(srv, cacheClosers)
	return nil
}

// newAuthRouter wires the identity partition's routes. Signup is the only
// public write; everything else on this surface requires a bearer token,
// except the resolve handshake which is service-signed.
func newAuthRouter(
	cfg *config.Config,
	authStore *store.AuthStore,
) (*gin.Engine, map[string]func() error) {
	recorder := metrics.Init(cfg.MetricsEnabled)
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenLifetime)

	providerCache, providerCacheCloser := newCache[models.Provider](cfg, "auth:")

	userService := services.NewUserService(authStore, cfg.BcryptCost)
	if providerCache != nil {
		userService = userService.WithProviderCache(providerCache, cfg.ProviderTTL)
	}
	authService := services.NewAuthService(userService, authStore, codec, recorder)
	providerService := services.NewProviderService(authStore)

	registry := federation.NewRegistry(recorder)
	registry.Register(federation.TypenameUser, federation.NewIdentityResolver(userService))

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	providerHandler := handlers.NewProviderHandler(providerService)
	resolveHandler := handlers.NewResolveHandler(registry)

	r := newRouter(cfg, recorder)
	r.GET("/health", createHealthCheckHandler(authStore.Health))

	requireToken := middleware.RequireToken(codec, authService)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.GET("/me", requireToken, authHandler.Me)
	}

	users := r.Group("/users", requireToken)
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
	}

	providers := r.Group("/providers", requireToken)
	{
		providers.GET("", providerHandler.List)
		providers.GET("/:id", providerHandler.Get)
		providers.POST("", providerHandler.Create)
		providers.PATCH("/:id", providerHandler.Update)
		providers.POST("/:id/activate", providerHandler.Activate)
		providers.POST("/:id/disable", providerHandler.Disable)
		providers.DELETE("/:id", providerHandler.Delete)
	}

	internal := r.Group("/internal", middleware.RequireServiceAuth(
		cfg.ResolveAuthMode, cfg.ResolveAuthSecret, cfg.ResolveAuthHeader))
	{
		internal.POST("/resolve", resolveHandler.Resolve)
	}

	return r, map[string]func() error{
		"provider": providerCacheCloser,
	}
}
