package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mapsee-lab/placesync/internal/config"
	"github.com/mapsee-lab/placesync/internal/database"
	"github.com/mapsee-lab/placesync/internal/logger"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
	healthCheckTimeout   = 2 * time.Second
	serviceVersion       = "1.0.0"
)

// Router wires the HTTP surface of the service.
type Router struct {
	handlers    *Handlers
	store       *database.Store
	redisClient *redis.Client
	registry    *prometheus.Registry
	cfg         *config.Config
	logger      logger.Logger
}

// NewRouter creates a new API router
func NewRouter(
	handlers *Handlers,
	store *database.Store,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	cfg *config.Config,
	log logger.Logger,
) *Router {
	return &Router{
		handlers:    handlers,
		store:       store,
		redisClient: redisClient,
		registry:    registry,
		cfg:         cfg,
		logger:      log,
	}
}

// Engine builds the gin engine with all routes attached.
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(r.cfg.Server.CORSOrigins))

	engine.GET("/health", r.health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	apiGroup := engine.Group("/api")
	{
		ai := apiGroup.Group("/ai", apiKeyAuth(r.cfg.Webhook.APIKey, r.logger))
		ai.POST("/callback", r.handlers.HandleCallback)

		apiGroup.GET("/places/:id", r.handlers.GetPlace)
		apiGroup.GET("/interests", r.handlers.GetInterests)
	}

	return engine
}

// NewServer wraps the engine in an http.Server with the configured
// timeouts.
func (r *Router) NewServer() *http.Server {
	return &http.Server{
		Addr:         r.cfg.Server.Address,
		Handler:      r.Engine(),
		ReadTimeout:  r.cfg.Server.ReadTimeout,
		WriteTimeout: r.cfg.Server.WriteTimeout,
	}
}

// health reports dependency status. A degraded dependency flips the
// status but keeps 200 so orchestrators see liveness separately from
// dependency health.
func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := healthStatusHealthy
	checks := gin.H{}

	if err := r.store.Ping(ctx); err != nil {
		status = healthStatusDegraded
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(ctx).Err(); err != nil {
			status = healthStatusDegraded
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "placesync",
		"version": serviceVersion,
		"checks":  checks,
	})
}
