package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/cache"
	"frontdesk/internal/domain"
)

func (h *Handler) getRoster(c *gin.Context) {
	roster, err := h.services.Catalog.Roster(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("roster fetch failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, roster)
}

func (h *Handler) getServices(c *gin.Context) {
	services, err := h.services.Catalog.Services(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("services fetch failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, services)
}

// updateBusinessHours is the settings-edit path: write through, invalidate the
// cached hours, and route a coalesced change notification downstream.
func (h *Handler) updateBusinessHours(c *gin.Context) {
	businessID := c.Param("id")

	var hours []domain.UpdateDayHoursDTO
	if err := c.ShouldBindJSON(&hours); err != nil {
		badRequestResponse(c, "invalid hours payload")
		return
	}

	if err := h.services.Catalog.ReplaceBusinessHours(c.Request.Context(), businessID, hours); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			internalServerErrorResponse(c)
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	h.services.InvalidateAfterWrite(businessID, cache.EntityHours)
	h.services.NotifyConfigChanged(businessID)

	messageResponse(c, http.StatusOK, "business hours updated")
}

func (h *Handler) updateResourceHours(c *gin.Context) {
	businessID := c.Param("id")
	resourceID := c.Param("resourceId")

	var hours []domain.UpdateResourceDayHoursDTO
	if err := c.ShouldBindJSON(&hours); err != nil {
		badRequestResponse(c, "invalid hours payload")
		return
	}

	if err := h.services.Catalog.ReplaceResourceHours(c.Request.Context(), businessID, resourceID, hours); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			internalServerErrorResponse(c)
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	h.services.InvalidateAfterWrite(businessID, cache.EntityResourceHours)
	h.services.NotifyConfigChanged(businessID)

	messageResponse(c, http.StatusOK, "resource hours updated")
}

func (h *Handler) notifyConfigChanged(c *gin.Context) {
	businessID := c.Param("id")

	h.services.InvalidateAfterWrite(businessID, "")
	h.services.NotifyConfigChanged(businessID)

	messageResponse(c, http.StatusAccepted, "refresh scheduled")
}
