package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday, 27 August 2026, mid-afternoon.
func fixedNow(loc *time.Location) time.Time {
	return time.Date(2026, 8, 27, 15, 0, 0, 0, loc)
}

func TestResolveDate(t *testing.T) {
	now := fixedNow(time.UTC)

	cases := []struct {
		in   string
		want string
	}{
		{"today", "2026-08-27"},
		{"tomorrow", "2026-08-28"},
		{"day after tomorrow", "2026-08-29"},
		{"in 3 days", "2026-08-30"},
		{"in 1 day", "2026-08-28"},
		{"next week", "2026-08-31"},         // upcoming Monday
		{"end of week", "2026-08-28"},       // upcoming Friday
		{"end of the week", "2026-08-28"},
		{"friday", "2026-08-28"},
		{"monday", "2026-08-31"},
		{"tuesday", "2026-09-01"},           // already occurred this week
		{"thursday", "2026-09-03"},          // same day rolls a week out
		{"next friday", "2026-09-04"},       // "next" + not-yet-occurred rolls a week
		{"next tuesday", "2026-09-01"},      // already occurred, no extra roll
		{"next thursday", "2026-09-03"},
		{"this friday", "2026-08-28"},
		{"2026-09-04", "2026-09-04"},
	}

	for _, tc := range cases {
		expr := ClassifyDate(tc.in)
		require.NotEqual(t, KindUnrecognized, expr.Kind, "ClassifyDate(%q)", tc.in)
		got := ResolveDate(expr, now)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), "ResolveDate(%q)", tc.in)
	}
}

func TestClassifyDateUnrecognized(t *testing.T) {
	for _, in := range []string{"", "whenever", "2026-13-40", "in many days"} {
		assert.Equal(t, KindUnrecognized, ClassifyDate(in).Kind, "ClassifyDate(%q)", in)
	}
}

func TestParseDateTomorrowProperty(t *testing.T) {
	for _, tz := range []string{"UTC", "America/New_York", "Asia/Tokyo", "Europe/Athens"} {
		got, exact := ParseDate("tomorrow", tz)
		require.True(t, exact, "tz %s", tz)
		assert.True(t, got.Equal(TodayIn(tz).AddDate(0, 0, 1)), "tz %s: got %s", tz, got)
	}
}

func TestParseDateFallsBackToToday(t *testing.T) {
	got, exact := ParseDate("no idea honestly", "America/New_York")
	assert.False(t, exact)
	assert.True(t, got.Equal(TodayIn("America/New_York")))
}

func TestParseDateGenericFormats(t *testing.T) {
	got, exact := ParseDate("March 3, 2027", "UTC")
	assert.False(t, exact, "generic parse counts as a best guess")
	assert.Equal(t, "2027-03-03", got.Format("2006-01-02"))
}

func TestParseDateBadTimezone(t *testing.T) {
	got, _ := ParseDate("tomorrow", "Not/AZone")
	assert.Equal(t, time.UTC, got.Location())
}

func TestAbsoluteRoundTripAcrossDST(t *testing.T) {
	const tz = "America/New_York"

	cases := []struct {
		year   int
		month  time.Month
		day    int
		hour   int
		minute int
	}{
		{2026, 3, 7, 9, 0},   // day before spring forward
		{2026, 3, 8, 9, 0},   // spring forward (2026-03-08)
		{2026, 3, 9, 9, 0},
		{2026, 10, 31, 14, 30},
		{2026, 11, 1, 9, 0},  // fall back (2026-11-01)
		{2026, 11, 2, 9, 0},
	}

	for _, tc := range cases {
		got := Absolute(tc.year, tc.month, tc.day, tc.hour, tc.minute, tz)
		rendered := got.In(Location(tz))
		assert.Equal(t, tc.year, rendered.Year())
		assert.Equal(t, tc.month, rendered.Month())
		assert.Equal(t, tc.day, rendered.Day())
		assert.Equal(t, tc.hour, rendered.Hour())
		assert.Equal(t, tc.minute, rendered.Minute())
	}
}

func TestAbsoluteOffsetsDiffer(t *testing.T) {
	winter := Absolute(2026, 1, 15, 12, 0, "America/New_York")
	summer := Absolute(2026, 7, 15, 12, 0, "America/New_York")

	_, winterOff := winter.Zone()
	_, summerOff := summer.Zone()
	assert.Equal(t, -5*3600, winterOff)
	assert.Equal(t, -4*3600, summerOff)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"14:30", 14, 30, true},
		{"09:00", 9, 0, true},
		{"2:30pm", 14, 30, true},
		{"2:30 PM", 14, 30, true},
		{"9am", 9, 0, true},
		{"12pm", 12, 0, true},
		{"12am", 0, 0, true},
		{"morning", 9, 0, true},
		{"noon", 12, 0, true},
		{"lunch", 12, 0, true},
		{"afternoon", 14, 0, true},
		{"evening", 16, 0, true},
		{"end of day", 16, 0, true},
		{"3", 15, 0, true},  // bare 1-7 assumed PM
		{"7", 19, 0, true},
		{"8", 8, 0, true},
		{"10", 10, 0, true},
		{"quarter past", 10, 0, false},
		{"", 10, 0, false},
		{"14:99", 10, 0, false},
	}

	for _, tc := range cases {
		h, m, ok := ParseClock(tc.in)
		assert.Equal(t, tc.hour, h, "ParseClock(%q) hour", tc.in)
		assert.Equal(t, tc.minute, m, "ParseClock(%q) minute", tc.in)
		assert.Equal(t, tc.ok, ok, "ParseClock(%q) ok", tc.in)
	}
}

func TestIsRangeRequest(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"next week", true},
		{"sometime next week", true},
		{"this week", true},
		{"any day works for me", true},
		{"anytime", true},
		{"any time after lunch", true},
		{"tomorrow", false},
		{"friday", false},
		{"2026-09-04", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsRangeRequest(tc.in), "IsRangeRequest(%q)", tc.in)
	}
}

func TestTodayInIsMidnight(t *testing.T) {
	today := TodayIn("Asia/Tokyo")
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, "Asia/Tokyo", today.Location().String())
}
