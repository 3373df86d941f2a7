package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.config.Version})
	})

	api := router.Group("/api/v1")
	{
		availability := api.Group("/availability")
		{
			availability.POST("/check", h.checkAvailability)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("/", h.bookAppointment)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id/confirm", h.confirmAppointment)
			appointments.PUT("/:id/reschedule", h.rescheduleAppointment)
			appointments.DELETE("/:id", h.cancelAppointment)
		}

		businesses := api.Group("/businesses")
		{
			businesses.GET("/:id/resources", h.getRoster)
			businesses.GET("/:id/services", h.getServices)
			businesses.PUT("/:id/hours", h.updateBusinessHours)
			businesses.PUT("/:id/resources/:resourceId/hours", h.updateResourceHours)
			businesses.POST("/:id/refresh", h.notifyConfigChanged)
		}
	}
}
