package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bsgreeks/internal/domain/dto"
	"github.com/guttosm/bsgreeks/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a 500 ErrorResponse
// when the handler did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Str("request_id", toString(rid)).Err(last.Err).Msg("unhandled request error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError stops the chain and writes status with a standardized body.
// err is recorded on the context so RequestLogger counts it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
