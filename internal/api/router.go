package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/bsgreeks/internal/metrics"
	"github.com/guttosm/bsgreeks/internal/middleware"
)

// RouterOptions carries the HTTP policy the router is built with.
type RouterOptions struct {
	Debug              bool
	AllowedOrigins     []string
	TrustedHosts       []string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	Metrics            *metrics.Metrics
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds CORS, trusted-host filtering (outside debug) and metrics when configured.
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) in debug mode only.
//   - Mounts /metrics when a Metrics instance is supplied.
//   - Configures API v1 routes (/api/v1/black-scholes).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
	)
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	if cfg, ok := corsConfig(opts.AllowedOrigins); ok {
		router.Use(cors.New(cfg))
	}
	if !opts.Debug {
		router.Use(middleware.TrustedHosts(opts.TrustedHosts))
	}
	router.Use(middleware.Timeout(opts.RequestTimeout))

	// ─── Meta ─────────────────────────────────────
	router.GET("/", Index(opts.Debug))
	if opts.Debug {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		bs := v1.Group("/black-scholes")
		bs.POST("/calculate", handler.Calculate)
		bs.POST("/process", handler.Process)
		bs.GET("/example", handler.Example)
	}

	return router
}

// corsConfig builds the CORS policy for origins. ok is false when no origin
// is allowed, in which case no CORS headers are sent at all.
func corsConfig(origins []string) (cors.Config, bool) {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	var list []string
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg, true
		case strings.HasPrefix(o, "http://"), strings.HasPrefix(o, "https://"):
			list = append(list, strings.TrimSuffix(o, "/"))
		}
	}
	if len(list) == 0 {
		return cors.Config{}, false
	}
	cfg.AllowOrigins = list
	return cfg, true
}
