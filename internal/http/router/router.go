package router

import (
	"net/http"
	"time"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the engine: shared middleware, health and metrics endpoints,
// and every module under the authenticated /api/v1 group.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app.Config))

	registry := app.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	engine.Use(httpkit.NewMetrics(registry).Middleware())

	limiter := httpkit.NewPerMinuteLimiter(app.Config.GetRateLimitPerMinute(), app.Logger)

	engine.GET("/api/health", func(c *gin.Context) {
		if app.Health != nil {
			if err := app.Health.Ping(c.Request.Context()); err != nil {
				app.Logger.DatabaseError("health ping", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := engine.Group("/api/v1")
	v1.Use(limiter.RateLimit())

	auth := httpkit.AuthRequired(app.Config, app.Logger)
	protected := v1.Group("")
	protected.Use(auth)

	ctx := &apphttp.RouterContext{
		V1:        v1,
		Protected: protected,
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	if len(corsCfg.AllowOrigins) == 0 && !corsCfg.AllowAllOrigins {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	return cors.New(corsCfg)
}
