package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger writes one line per request. The live feed is logged on
// upgrade only.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	kv := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if len(c.Errors) > 0 {
		kv = append(kv, "errors", c.Errors.String())
	}
	if c.Writer.Status() >= 500 {
		h.log.Errorw("http_request", kv...)
		return
	}
	h.log.Debugw("http_request", kv...)
}
