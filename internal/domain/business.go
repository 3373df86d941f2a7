package domain

import (
	"time"
)

const DefaultSlotIntervalMinutes = 30

type Business struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Timezone            string    `json:"timezone"`
	SlotIntervalMinutes int       `json:"slot_interval_minutes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SlotInterval returns the configured slot granularity, falling back to 30 minutes.
func (b *Business) SlotInterval() int {
	if b.SlotIntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return b.SlotIntervalMinutes
}

type DayHours struct {
	BusinessID string       `json:"business_id"`
	Weekday    time.Weekday `json:"weekday"`
	OpenTime   string       `json:"open_time"`
	CloseTime  string       `json:"close_time"`
	Closed     bool         `json:"closed"`
}

// BusinessHours holds at most one DayHours record per weekday.
type BusinessHours []DayHours

// DayRule is the effective window for one weekday. A weekday with no configured
// record collapses to closed here, so callers never re-derive that convention.
type DayRule struct {
	Open        bool
	StartMinute int
	EndMinute   int
}

var RuleClosed = DayRule{}

// Rule maps a weekday to its effective window under the business-wide hours.
func (h BusinessHours) Rule(day time.Weekday) DayRule {
	for _, d := range h {
		if d.Weekday != day {
			continue
		}
		if d.Closed {
			return RuleClosed
		}
		start, err := MinuteOfDay(d.OpenTime)
		if err != nil {
			return RuleClosed
		}
		end, err := MinuteOfDay(d.CloseTime)
		if err != nil || end <= start {
			return RuleClosed
		}
		return DayRule{Open: true, StartMinute: start, EndMinute: end}
	}
	return RuleClosed
}

type UpdateDayHoursDTO struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Closed    bool   `json:"closed"`
}

// MinuteOfDay converts an "HH:MM" wall-clock string to minutes from midnight.
func MinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
