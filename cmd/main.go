package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"vertifarm/internal/caching"
	"vertifarm/internal/config"
	"vertifarm/internal/handlers"
	"vertifarm/internal/metrics"
	"vertifarm/internal/repositories"
	"vertifarm/internal/services"
	"vertifarm/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected")

	var cacheSvc caching.CacheService
	if cfg.RedisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := cacheSvc.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, reads will fall through to storage", zap.Error(err))
		}
	} else {
		cacheSvc = caching.NewNoopCacheService()
		logger.Info("redis not configured, caching disabled")
	}

	// Create repositories
	containerRepo := repositories.NewContainerRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)

	// Create services
	containerSvc := services.NewContainerService(containerRepo, cacheSvc, logger)
	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc, logger)

	// Create handlers
	containerHandlers := handlers.NewContainerHandlers(containerSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(metrics.Middleware())

	// Liveness/info endpoints
	e.GET("/", healthHandlers.Root)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Container routes
	e.GET("/containers", containerHandlers.ListContainers)
	e.GET("/containers/performance", containerHandlers.GetPerformance)
	e.GET("/containers/export", containerHandlers.ExportContainers)
	e.GET("/containers/:id", containerHandlers.GetContainer)
	e.POST("/containers", containerHandlers.CreateContainer)
	e.PUT("/containers/:id", containerHandlers.UpdateContainer)
	e.DELETE("/containers/:id", containerHandlers.DeleteContainer)

	// Tenant routes
	e.GET("/tenants", tenantHandlers.ListTenants)

	logger.Info("server starting", zap.String("version", version), zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
