package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/clinicore/records-api/internal/handler"
	"github.com/clinicore/records-api/internal/handler/prometheus"
	"github.com/clinicore/records-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

type Router struct {
	engine *gin.Engine
}

// New assembles the gin engine: request id, logging, recovery, rate limiting
// and metrics around the versioned API routes.
func New(logger zerolog.Logger, config Config, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	prom := prometheus.New()
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.Recovery())
	engine.Use(prom.Middleware())

	engine.GET("/health", handler.HealthCheck)
	engine.GET("/metrics", prom.Handler())

	api := engine.Group("/api/v1")
	api.Use(limiter.RateLimit())
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
