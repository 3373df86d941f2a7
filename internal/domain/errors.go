package domain

import (
	"errors"
)

// Engine error taxonomy. Parsing never produces these; availability and booking
// operations return them so the conversational caller can always speak a
// graceful next step instead of surfacing a bare failure.
var (
	ErrConfigurationMissing = errors.New("no business hours configured")
	ErrPastDate             = errors.New("requested date is in the past")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrFullyBooked          = errors.New("no open time slots")
	ErrConflict             = errors.New("time slot already taken")
	ErrStoreUnavailable     = errors.New("data store unavailable")
)
