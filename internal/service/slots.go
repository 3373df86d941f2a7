package service

import (
	"time"

	"frontdesk/internal/domain"
)

// daySlotMinutes walks candidate start times across one calendar day and
// returns the surviving ones as minute offsets from midnight. date and now
// must already be in the business timezone; date is midnight of the day under
// consideration. The computation is deterministic for given inputs — the only
// time-of-call dependence is dropping slots already behind "now" on today.
func daySlotMinutes(date time.Time, durationMin int, rule domain.DayRule, intervalMin int, bookings []domain.Appointment, now time.Time) []int {
	if !rule.Open || durationMin <= 0 || intervalMin <= 0 {
		return nil
	}

	booked := bookedIntervals(date, durationMin, bookings)
	sameDay := sameDate(date, now)
	nowMin := now.Hour()*60 + now.Minute()

	var slots []int
	for start := rule.StartMinute; start+durationMin <= rule.EndMinute; start += intervalMin {
		if sameDay && start <= nowMin {
			continue
		}
		if overlapsAny(start, start+durationMin, booked) {
			continue
		}
		slots = append(slots, start)
	}
	return slots
}

// ComputeDaySlots is the full per-day availability computation: effective
// window via rule, existing-booking exclusion, past-slot filtering on today,
// and 12-hour formatting in chronological order.
func ComputeDaySlots(date time.Time, durationMin int, rule domain.DayRule, intervalMin int, bookings []domain.Appointment, now time.Time) domain.DayAvailability {
	if !rule.Open {
		return domain.DayAvailability{Date: date, Closed: true, Slots: []string{}}
	}

	minutes := daySlotMinutes(date, durationMin, rule, intervalMin, bookings, now)
	slots := make([]string, 0, len(minutes))
	for _, m := range minutes {
		slots = append(slots, FormatMinute(m))
	}
	return domain.DayAvailability{Date: date, Slots: slots}
}

type minuteInterval struct {
	start int
	end   int
}

// bookedIntervals projects the bookings that fall on date (business-local)
// onto [startMinute, endMinute) pairs. A stored end at or before its start, or
// exactly at midnight, is treated as corrupt and replaced with start+duration.
func bookedIntervals(date time.Time, durationMin int, bookings []domain.Appointment) []minuteInterval {
	loc := date.Location()
	var out []minuteInterval
	for _, b := range bookings {
		if !b.Active() {
			continue
		}
		start := b.StartAt.In(loc)
		if !sameDate(start, date) {
			continue
		}
		end := b.EndAt.In(loc)
		startMin := start.Hour()*60 + start.Minute()
		endMin := end.Hour()*60 + end.Minute()
		if endMin <= startMin || endMin == 0 {
			endMin = startMin + durationMin
		}
		out = append(out, minuteInterval{start: startMin, end: endMin})
	}
	return out
}

// Half-open intervals: [start,end) overlaps [b.start,b.end) iff
// start < b.end && b.start < end.
func overlapsAny(start, end int, booked []minuteInterval) bool {
	for _, b := range booked {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatMinute renders a minute offset from midnight as a spoken 12-hour time.
func FormatMinute(m int) string {
	return time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("3:04 PM")
}
