package handlers

import (
	"errors"
	"net/http"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/page"
	"vehicle_dashboard/internal/socket"
	"vehicle_dashboard/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	statusOK   = "ok"
	statusSent = "sent"

	errInvalidBodyPref = "invalid body: "
	errNotConnected    = "telemetry server not connected"
	errRangeDisabled   = "accelerator range is disabled while cruise control is on"
	errSendFailed      = "failed to send control message"
	errAccelOutOfRange = "accel-val must be between 0 and 100"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// AccelRequest is the accelerator update body, for Swagger docs.
type AccelRequest struct {
	// Accelerator position in percent
	AccelVal float64 `json:"accel-val" example:"35"`
}

// CruiseResponse is returned after a cruise form submission.
type CruiseResponse struct {
	Status        string           `json:"status" example:"sent"`
	Payload       vd.CruiseRequest `json:"payload"`
	RangeDisabled bool             `json:"range_disabled"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Submit cruise control form
// @Description  Takes the cruise form fields in document order and emits "update cruise". While cruise is on the accelerator range is disabled.
// @Tags         controls
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        cruise-enable  formData  string  false  "present (any value but false) when checked"
// @Param        cruise-speed   formData  string  false  "setpoint in mph; blank sends 0"
// @Success      200  {object}  CruiseResponse
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]interface{}
// @Router       /cruise [post]
func (h *Handler) submitCruise(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	fields, err := view.ParseFormFields(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	res, err := h.services.Controls.SubmitCruise(c.Request.Context(), fields)
	if err != nil {
		if errors.Is(err, socket.ErrNotConnected) {
			h.log.Infow("cruise_not_sent", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":          errNotConnected,
				"range_disabled": res.RangeDisabled,
			})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSendFailed, "cruise_submit_failed", err)
		return
	}
	c.JSON(http.StatusOK, CruiseResponse{
		Status:        statusSent,
		Payload:       res.Payload,
		RangeDisabled: res.RangeDisabled,
	})
}

// @Summary      Update accelerator
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        body  body      AccelRequest  true  "Accelerator payload"
// @Success      200   {object}  map[string]interface{}  "status, payload"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/accel [post]
func (h *Handler) updateAccel(c *gin.Context) {
	var req vd.AccelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	v, ok := req[vd.FieldAccelValue]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + "missing " + vd.FieldAccelValue})
		return
	}
	if v < 0 || v > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errAccelOutOfRange})
		return
	}

	payload, err := h.services.Controls.UpdateAccel(c.Request.Context(), v)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": statusSent, "payload": payload})
	case errors.Is(err, page.ErrRangeDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": errRangeDisabled})
	case errors.Is(err, socket.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNotConnected})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errSendFailed, "accel_update_failed", err, "accel", v)
	}
}
