package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler mounts the exporter handler on a gin route.
// Without an exporter the route answers 503.
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	if handler == nil {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "metrics exporter not initialized",
			})
		}
	}

	return gin.WrapH(handler)
}
