package domain

import (
	"time"
)

type Resource struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ResourceDayHours struct {
	ResourceID string       `json:"resource_id"`
	BusinessID string       `json:"business_id"`
	Weekday    time.Weekday `json:"weekday"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	Off        bool         `json:"off"`
}

// ResourceHours holds at most one override record per weekday for one resource.
type ResourceHours []ResourceDayHours

// Rule maps a weekday to the resource's effective window. An explicit "off"
// entry closes the day outright, with no business-hours fallback. A weekday
// with no override falls back to the business-wide rule.
func (h ResourceHours) Rule(day time.Weekday, fallback BusinessHours) DayRule {
	for _, d := range h {
		if d.Weekday != day {
			continue
		}
		if d.Off {
			return RuleClosed
		}
		start, err := MinuteOfDay(d.StartTime)
		if err != nil {
			return RuleClosed
		}
		end, err := MinuteOfDay(d.EndTime)
		if err != nil || end <= start {
			return RuleClosed
		}
		return DayRule{Open: true, StartMinute: start, EndMinute: end}
	}
	return fallback.Rule(day)
}

type UpdateResourceDayHoursDTO struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Off       bool   `json:"off"`
}
