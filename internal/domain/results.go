package domain

import (
	"time"
)

// AvailabilityQuery is the single inbound shape the conversational layer uses.
// Expression carries the caller's spoken date phrase ("tomorrow", "next week",
// "2026-09-04"); a resource may be addressed by id or by spoken name.
type AvailabilityQuery struct {
	BusinessID   string `json:"business_id" binding:"required"`
	Expression   string `json:"expression" binding:"required"`
	ServiceID    string `json:"service_id"`
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name"`
}

// DayAvailability is the computed slot set for one calendar day.
type DayAvailability struct {
	Date   time.Time `json:"date"`
	Closed bool      `json:"closed"`
	Slots  []string  `json:"slots"`
}

// DayOption is one qualifying day from a range plan, trimmed to at most two
// representative times for conversational presentation.
type DayOption struct {
	Day   string   `json:"day"`
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// AvailabilityResult is what the phone agent speaks from. Message and
// Suggestion are always populated on failure so every path has a next step.
type AvailabilityResult struct {
	Available  bool        `json:"available"`
	Date       string      `json:"date,omitempty"`
	Day        string      `json:"day,omitempty"`
	Slots      []string    `json:"slots,omitempty"`
	Days       []DayOption `json:"days,omitempty"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// BookingRequest carries a resolved booking attempt into the conflict guard.
type BookingRequest struct {
	BusinessID       string `json:"business_id" binding:"required"`
	ResourceID       string `json:"resource_id"`
	ResourceName     string `json:"resource_name"`
	ServiceID        string `json:"service_id"`
	ServiceName      string `json:"service_name"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	CustomerName     string `json:"customer_name" binding:"required"`
	CustomerPhone    string `json:"customer_phone" binding:"required"`
}

type BookingResult struct {
	Committed     bool      `json:"committed"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	StartAt       time.Time `json:"start_at,omitempty"`
	EndAt         time.Time `json:"end_at,omitempty"`
	ConflictAt    string    `json:"conflict_at,omitempty"`
	Message       string    `json:"message"`
	Suggestion    string    `json:"suggestion,omitempty"`
}

type RescheduleDTO struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}
