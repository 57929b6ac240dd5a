package handlers

import (
	"net/http"

	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
	savedBody         = "Saved"

	errInvalidReading = "invalid reading payload"
	errStoreDown      = "telemetry store unavailable"
	errInternal       = "internal error"

	codeInvalidReading = "invalid_reading"
	codePersistence    = "persistence_error"
	codeInternal       = "internal_error"
)

// ErrorResponse is the body of every 4xx/5xx reply from the API.
type ErrorResponse struct {
	Error string `json:"error" example:"telemetry store unavailable"`
	Code  string `json:"code" example:"persistence_error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// respondError logs err and maps it to a status code and a body with no internal detail.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	fields := append([]interface{}{"err", err}, kv...)
	h.log.Errorw(logKey, fields...)

	if repository.IsPersistence(err) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errStoreDown, Code: codePersistence})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errInternal, Code: codeInternal})
}

// @Summary      Health check
// @Description  Reports whether the telemetry store answers a ping
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	if err := h.services.Telemetry.Ping(c.Request.Context()); err != nil {
		h.log.Warnw("health_ping_failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: statusUnavailable})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: statusOK})
}

// @Summary      Ingest a reading
// @Description  Stores one telemetry snapshot. Every field is optional; an empty body stores an empty reading.
// @Tags         telemetry
// @Accept       json
// @Produce      plain
// @Param        body  body      models.Reading  false  "Reading"
// @Success      200   {string}  string          "Saved"
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/data [post]
func (h *Handler) postReading(c *gin.Context) {
	var in models.Reading
	body, err := c.GetRawData()
	if err == nil {
		in, err = models.DecodeReading(body)
	}
	if err != nil {
		h.log.Infow("telemetry_payload_rejected", "err", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidReading, Code: codeInvalidReading})
		return
	}

	stored, err := h.services.Telemetry.Ingest(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, "telemetry_ingest_failed")
		return
	}
	h.log.Debugw("telemetry_ingested", "id", stored.ID, "alert", stored.Alert)
	c.String(http.StatusOK, savedBody)
}

// @Summary      Recent readings
// @Description  The most recent readings, newest first
// @Tags         telemetry
// @Produce      json
// @Success      200  {array}   models.StoredReading
// @Failure      500  {object}  ErrorResponse
// @Router       /api/data [get]
func (h *Handler) getReadings(c *gin.Context) {
	readings, err := h.services.Telemetry.Recent(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "telemetry_recent_failed")
		return
	}
	c.JSON(http.StatusOK, readings)
}

// @Summary      Dashboard view
// @Description  Recent readings oldest first, plus the alert, obstacle flag and highlight of the latest one
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      500  {object}  ErrorResponse
// @Router       /api/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	view, err := h.services.Telemetry.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "telemetry_dashboard_failed")
		return
	}
	c.JSON(http.StatusOK, view)
}
