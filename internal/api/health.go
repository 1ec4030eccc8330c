package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bsgreeks/internal/logger"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (prices a reference contract through the engine).
type HealthHandler struct {
	ping func(context.Context) error
}

// NewHealthHandler constructs a HealthHandler with the provided ping function.
//
// Parameters:
//   - ping (func(context.Context) error): Readiness check, typically
//     PricingService.Ping. nil means always ready.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if ping succeeds, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (engine self-check)
	// @Summary      Readiness probe
	// @Description  Returns ready if the pricing engine reproduces its reference price
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ping != nil {
			if err := h.ping(c.Request.Context()); err != nil {
				logger.L().Warn().Err(err).Msg("readiness check failed")
				c.JSON(503, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
