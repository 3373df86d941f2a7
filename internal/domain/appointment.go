package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

const (
	// DefaultAppointmentMinutes applies when neither a service nor a caller
	// estimate resolves a duration.
	DefaultAppointmentMinutes = 60
	// MaxEstimatedMinutes caps caller-supplied duration estimates at 8 hours.
	MaxEstimatedMinutes = 480
)

type Appointment struct {
	ID            string            `json:"id"`
	BusinessID    string            `json:"business_id"`
	ResourceID    *string           `json:"resource_id"`
	ServiceID     *string           `json:"service_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	StartAt       time.Time         `json:"start_at"`
	EndAt         time.Time         `json:"end_at"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}

// CanTransitionTo enforces the status machine: scheduled may confirm or cancel,
// confirmed may only cancel, and cancelled is terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case AppointmentStatusScheduled:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCancelled
	default:
		return false
	}
}

type AppointmentFilter struct {
	BusinessID       string
	ResourceID       *string
	From             time.Time
	To               time.Time
	ExcludeCancelled bool
}

// ResolveDuration applies the duration precedence for a new appointment:
// service duration first, then a caller estimate capped at 8 hours, then 60 minutes.
func ResolveDuration(svc *Service, estimatedMinutes int) int {
	if svc != nil {
		return svc.Duration()
	}
	if estimatedMinutes > 0 {
		if estimatedMinutes > MaxEstimatedMinutes {
			return MaxEstimatedMinutes
		}
		return estimatedMinutes
	}
	return DefaultAppointmentMinutes
}
