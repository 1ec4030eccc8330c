package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bsgreeks/internal/domain/dto"
)

// TrustedHosts rejects requests whose Host header (port ignored) is not in
// hosts with 400. "*" allows everything, as does an empty list.
func TrustedHosts(hosts []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "*" {
			return func(c *gin.Context) { c.Next() }
		}
		if h != "" {
			allowed[h] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if _, ok := allowed[strings.ToLower(host)]; !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("invalid host header", nil))
			return
		}
		c.Next()
	}
}
