package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/domain"
)

func (h *Handler) checkAvailability(c *gin.Context) {
	var query domain.AvailabilityQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		badRequestResponse(c, "business_id and expression are required")
		return
	}

	result, err := h.services.Agent.CheckAvailability(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("availability check failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, result)
}
