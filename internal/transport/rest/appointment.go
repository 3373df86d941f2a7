package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/internal/domain"
)

func (h *Handler) bookAppointment(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "business_id, date, time, customer_name and customer_phone are required")
		return
	}

	result, err := h.services.Agent.BookAppointment(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("booking failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	status := http.StatusCreated
	if !result.Committed {
		status = http.StatusConflict
	}
	successResponse(c, status, result)
}

func (h *Handler) getAppointmentByID(c *gin.Context) {
	appt, err := h.services.Booking.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		h.logger.Error("appointment fetch failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appt)
}

func (h *Handler) confirmAppointment(c *gin.Context) {
	if err := h.services.Booking.Confirm(c.Request.Context(), c.Param("id")); err != nil {
		h.respondTransitionError(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "appointment confirmed")
}

func (h *Handler) cancelAppointment(c *gin.Context) {
	if err := h.services.Booking.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.respondTransitionError(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "appointment cancelled")
}

func (h *Handler) rescheduleAppointment(c *gin.Context) {
	var dto domain.RescheduleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badRequestResponse(c, "date and time are required")
		return
	}

	result, err := h.services.Booking.Reschedule(c.Request.Context(), c.Param("id"), dto)
	if err != nil {
		h.respondTransitionError(c, err)
		return
	}

	status := http.StatusOK
	if !result.Committed {
		status = http.StatusConflict
	}
	successResponse(c, status, result)
}

func (h *Handler) respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAppointmentNotFound):
		notFoundResponse(c, "appointment not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		h.logger.Error("appointment update failed", zap.Error(err))
		internalServerErrorResponse(c)
	case errors.Is(err, domain.ErrPastDate):
		badRequestResponse(c, "requested date is in the past")
	default:
		badRequestResponse(c, err.Error())
	}
}
