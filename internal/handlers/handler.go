package handlers

import (
	"net/http"
	"time"

	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/metrics"
	"aquabot_telemetry/internal/service"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	metrics        *metrics.Metrics
	streamInterval time.Duration
}

// Config holds the optional HTTP-layer settings. A nil Metrics disables /metrics.
type Config struct {
	Metrics        *metrics.Metrics
	StreamInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	interval := cfg.StreamInterval
	if interval <= 0 || interval > maxInterval {
		interval = defaultInterval
	}
	return &Handler{
		services:       services,
		log:            log,
		metrics:        cfg.Metrics,
		streamInterval: interval,
	}
}

// InitRoutes builds the Gin router with all routes registered and wraps it
// in CORS so the browser dashboard can call the API from any origin.
func (h *Handler) InitRoutes() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), h.observe)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/data", h.postReading)
		api.GET("/data", h.getReadings)
		api.GET("/dashboard", h.getDashboard)
	}
}
