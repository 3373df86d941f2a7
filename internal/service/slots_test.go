package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/domain"
)

var slotLoc = mustLocation("America/New_York")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func openRule(startMin, endMin int) domain.DayRule {
	return domain.DayRule{Open: true, StartMinute: startMin, EndMinute: endMin}
}

func apptAt(date time.Time, startMin, endMin int) domain.Appointment {
	return domain.Appointment{
		StartAt: date.Add(time.Duration(startMin) * time.Minute),
		EndAt:   date.Add(time.Duration(endMin) * time.Minute),
		Status:  domain.AppointmentStatusScheduled,
	}
}

func TestDaySlotMinutesClosedDay(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, slotLoc)

	assert.Nil(t, daySlotMinutes(date, 60, domain.RuleClosed, 30, nil, now))
}

func TestDaySlotMinutesRespectsCloseTime(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, slotLoc)

	// 09:00-17:00, 60-minute duration, 30-minute steps. The last slot that
	// still fits is 16:00; 16:30 would run past close.
	minutes := daySlotMinutes(date, 60, openRule(9*60, 17*60), 30, nil, now)
	require.NotEmpty(t, minutes)
	assert.Equal(t, 9*60, minutes[0])
	assert.Equal(t, 16*60, minutes[len(minutes)-1])
	assert.Len(t, minutes, 15)
}

func TestDaySlotMinutesExcludesOverlaps(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, slotLoc)
	bookings := []domain.Appointment{apptAt(date, 10*60, 11*60)}

	minutes := daySlotMinutes(date, 60, openRule(9*60, 17*60), 30, bookings, now)

	// A 60-minute visit starting 09:30, 10:00 or 10:30 would overlap the
	// 10:00-11:00 booking. 09:00 ends exactly at 10:00 and 11:00 starts
	// exactly at its end, so both survive.
	assert.Contains(t, minutes, 9*60)
	assert.NotContains(t, minutes, 9*60+30)
	assert.NotContains(t, minutes, 10*60)
	assert.NotContains(t, minutes, 10*60+30)
	assert.Contains(t, minutes, 11*60)
}

func TestDaySlotMinutesIgnoresCancelled(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, slotLoc)
	cancelled := apptAt(date, 10*60, 11*60)
	cancelled.Status = domain.AppointmentStatusCancelled

	minutes := daySlotMinutes(date, 60, openRule(9*60, 17*60), 30, []domain.Appointment{cancelled}, now)
	assert.Contains(t, minutes, 10*60)
}

func TestDaySlotMinutesDropsPastSlotsToday(t *testing.T) {
	date := time.Date(2026, 8, 27, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 14, 30, 0, 0, slotLoc)

	minutes := daySlotMinutes(date, 30, openRule(9*60, 17*60), 30, nil, now)

	// Slots at or before 14:30 are gone; the first survivor is 15:00.
	require.NotEmpty(t, minutes)
	assert.Equal(t, 15*60, minutes[0])

	// A different day is untouched by the clock.
	tomorrow := date.AddDate(0, 0, 1)
	minutes = daySlotMinutes(tomorrow, 30, openRule(9*60, 17*60), 30, nil, now)
	assert.Equal(t, 9*60, minutes[0])
}

func TestBookedIntervalsRepairsBadEnd(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)

	// End at midnight reads as minute 0, which is before the start. The
	// interval falls back to start+duration instead of blocking nothing.
	bad := apptAt(date, 10*60, 0)
	bad.EndAt = date.AddDate(0, 0, 1)

	got := bookedIntervals(date, 45, []domain.Appointment{bad})
	require.Len(t, got, 1)
	assert.Equal(t, minuteInterval{start: 10 * 60, end: 10*60 + 45}, got[0])
}

func TestBookedIntervalsSkipsOtherDays(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	other := apptAt(date.AddDate(0, 0, 1), 10*60, 11*60)

	assert.Empty(t, bookedIntervals(date, 60, []domain.Appointment{other}))
}

func TestOverlapsAnyHalfOpen(t *testing.T) {
	booked := []minuteInterval{{start: 10 * 60, end: 11 * 60}}

	assert.False(t, overlapsAny(9*60, 10*60, booked))
	assert.True(t, overlapsAny(9*60+30, 10*60+30, booked))
	assert.True(t, overlapsAny(10*60+30, 11*60+30, booked))
	assert.False(t, overlapsAny(11*60, 12*60, booked))
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatMinute(9*60))
	assert.Equal(t, "12:00 PM", FormatMinute(12*60))
	assert.Equal(t, "12:30 AM", FormatMinute(30))
	assert.Equal(t, "4:00 PM", FormatMinute(16*60))
}

func TestComputeDaySlotsClosed(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, slotLoc)
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, slotLoc)

	got := ComputeDaySlots(date, 60, domain.RuleClosed, 30, nil, now)
	assert.True(t, got.Closed)
	assert.Empty(t, got.Slots)
}
