package bootstrap

import (
	"log"

	"github.com/nyomansunima/federation-service/internal/config"
	"github.com/nyomansunima/federation-service/internal/federation"
	"github.com/nyomansunima/federation-service/internal/handlers"
	"github.com/nyomansunima/federation-service/internal/metrics"
	"github.com/nyomansunima/federation-service/internal/middleware"
	"github.com/nyomansunima/federation-service/internal/services"
	"github.com/nyomansunima/federation-service/internal/store"
)

// RunMaster starts the application partition service: application and
// application-type management, and the AppsPayload side of the resolve
// handshake.
func RunMaster(cfg *config.Config) error {
	masterStore, err := store.NewMasterStore(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	recorder := metrics.Init(cfg.MetricsEnabled)

	appService := services.NewAppService(masterStore)
	appTypeService := services.NewAppTypeService(masterStore)

	registry := federation.NewRegistry(recorder)
	registry.Register(federation.TypenameApps, federation.NewApplicationResolver(appService))

	appHandler := handlers.NewAppHandler(appService)
	appTypeHandler := handlers.NewAppTypeHandler(appTypeService)
	resolveHandler := handlers.NewResolveHandler(registry)

	r := newRouter(cfg, recorder)
	r.GET("/health", createHealthCheckHandler(masterStore.Health))

	apps := r.Group("/apps")
	{
		apps.GET("", appHandler.List)
		apps.GET("/:id", appHandler.Get)
		apps.POST("", appHandler.Create)
		apps.PATCH("/:id", appHandler.Update)
		apps.POST("/:id/activate", appHandler.Activate)
		apps.DELETE("/:id", appHandler.Delete)
	}

	appTypes := r.Group("/app-types")
	{
		appTypes.GET("", appTypeHandler.List)
		appTypes.GET("/:id", appTypeHandler.Get)
		appTypes.POST("", appTypeHandler.Create)
		appTypes.PATCH("/:id", appTypeHandler.Update)
		appTypes.DELETE("/:id", appTypeHandler.Delete)
	}

	internal := r.Group("/internal", middleware.RequireServiceAuth(
		cfg.ResolveAuthMode, cfg.ResolveAuthSecret, cfg.ResolveAuthHeader))
	{
		internal.POST("/resolve", resolveHandler.Resolve)
	}

	log.Printf("Application service starting on %s", cfg.ServerAddr)

	srv := createHTTPServer(cfg, r)
	serveWithGracefulShutdown(srv, nil)
	return nil
}
