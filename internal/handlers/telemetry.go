package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"vehicle_dashboard/internal/page"

	"github.com/gin-gonic/gin"
)

const (
	errUnknownGauge = "unknown gauge"
	errRenderGauge  = "failed to render gauge"
)

// @Summary      Latest telemetry
// @Description  The most recent "my response" snapshot. 204 until the first one arrives.
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  vehicle_dashboard.TelemetrySnapshot
// @Success      204
// @Router       /api/v1/telemetry [get]
func (h *Handler) getTelemetry(c *gin.Context) {
	snap, ok := h.services.Monitoring.Latest()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Gauge image
// @Description  Current canvas of a gauge as PNG: gauge-canvas.png (speed) or gauge2-canvas.png (air-fuel ratio).
// @Tags         telemetry
// @Produce      png
// @Param        name  path  string  true  "gauge file name"  Enums(gauge-canvas.png, gauge2-canvas.png)
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /gauges/{name} [get]
func (h *Handler) getGauge(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.services.Monitoring.GaugePNG(c.Param("name"), &buf); err != nil {
		if errors.Is(err, page.ErrUnknownGauge) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUnknownGauge})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRenderGauge, "gauge_render_failed", err, "name", c.Param("name"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
