package handlers

import (
	"vehicle_dashboard/internal/logger"
	"vehicle_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services  *service.Service
	log       *logger.Logger
	staticDir string
}

// NewHandler constructs a new HTTP handler. staticDir holds the page
// assets (DTC icons under images/); empty disables /static.
func NewHandler(services *service.Service, log *logger.Logger, staticDir string) *Handler {
	return &Handler{services: services, log: logger.OrNop(log), staticDir: staticDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerPageRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/live", h.wsLive)
	r.POST("/cruise", h.submitCruise)
	r.GET("/gauges/:name", h.getGauge)
	if h.staticDir != "" {
		r.Static("/static", h.staticDir)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/telemetry", h.getTelemetry)
		api.POST("/accel", h.updateAccel)
		api.GET("/logs", h.getLogs)
	}
}
