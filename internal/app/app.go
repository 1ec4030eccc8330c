package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/guttosm/bsgreeks/config"
	"github.com/guttosm/bsgreeks/internal/api"
	"github.com/guttosm/bsgreeks/internal/metrics"
	"github.com/guttosm/bsgreeks/internal/service"
)

// registry is the Prometheus registry collectors are attached to. nil asks
// metrics.Register for a fresh one; tests swap it to force failures.
var registry *prometheus.Registry

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Registers the Prometheus collectors.
//   - Creates the pricing service with the configured engine limits.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes and HTTP policy.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	if err := m.Register(registry); err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize service layer (business logic)
	svc := service.NewPricingService(service.Limits{
		DefaultChunkSize: cfg.Pricing.ChunkSize,
		DefaultWorkers:   cfg.Pricing.Workers,
		MaxWorkers:       cfg.Pricing.MaxWorkers,
	}, m)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, cfg.HTTP.UploadMaxMB<<20)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		Debug:              cfg.App.Debug,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		TrustedHosts:       cfg.HTTP.TrustedHosts,
		RequestTimeout:     cfg.HTTP.RequestTimeout,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		Metrics:            m,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(svc.Ping)
	healthHandler.Register(router)

	// Nothing is held open; kept so main's shutdown path stays uniform.
	cleanup := func() {}

	return router, cleanup, nil
}
