package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// observe records every request in the metrics and the debug log.
func (h *Handler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	elapsed := time.Since(start)
	status := c.Writer.Status()
	h.metrics.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", elapsed,
	)
}
