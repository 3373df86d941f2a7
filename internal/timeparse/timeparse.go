// Package timeparse resolves the natural-language date and time expressions a
// caller speaks during a live phone call into concrete wall-clock values in the
// business's IANA timezone. Nothing here returns an error for malformed input:
// unrecognized dates degrade to today and unrecognized times to 10:00, and the
// boolean returns let callers log that a best guess was used.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateKind tags the closed set of recognized date expressions. Classification
// happens in one pass so that adding a form is a localized change.
type DateKind int

const (
	KindUnrecognized DateKind = iota
	KindLiteral
	KindToday
	KindTomorrow
	KindDayAfterTomorrow
	KindInNDays
	KindNextWeek
	KindWeekday
	KindEndOfWeek
)

type DateExpr struct {
	Kind    DateKind
	N       int
	Weekday time.Weekday
	Next    bool
	Year    int
	Month   time.Month
	Day     int
}

var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	inDaysRe  = regexp.MustCompile(`^in (\d+) days?$`)
	clockRe   = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Location resolves an IANA timezone name, falling back to UTC on bad input.
func Location(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NowIn returns the current time as observed in tz, independent of the host
// process's local timezone.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// TodayIn returns wall-clock midnight of the current date in tz.
func TodayIn(tz string) time.Time {
	return Midnight(NowIn(tz))
}

// Midnight truncates t to the start of its day, preserving the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Absolute builds the instant whose rendering in tz reproduces the given
// year/month/day/hour/minute. The timezone database supplies the offset in
// force at that date; the result is re-rendered and corrected in case a DST
// transition skewed the first construction. A wall-clock time that does not
// exist (inside a spring-forward gap) stays normalized forward.
func Absolute(year int, month time.Month, day, hour, minute int, tz string) time.Time {
	loc := Location(tz)
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Hour() == hour && t.Minute() == minute {
		return t
	}
	_, offset := t.Zone()
	utc := time.Date(year, month, day, hour, minute, 0, 0, time.UTC).
		Add(-time.Duration(offset) * time.Second)
	corrected := utc.In(loc)
	if corrected.Hour() == hour && corrected.Minute() == minute {
		return corrected
	}
	return t
}

// ClassifyDate performs the single classification pass over a spoken date
// phrase. Resolution against "now" happens separately in ResolveDate.
func ClassifyDate(text string) DateExpr {
	s := strings.ToLower(strings.TrimSpace(text))

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return DateExpr{Kind: KindLiteral, Year: year, Month: time.Month(month), Day: day}
		}
		return DateExpr{Kind: KindUnrecognized}
	}

	switch s {
	case "today":
		return DateExpr{Kind: KindToday}
	case "tomorrow":
		return DateExpr{Kind: KindTomorrow}
	case "day after tomorrow":
		return DateExpr{Kind: KindDayAfterTomorrow}
	case "next week":
		return DateExpr{Kind: KindNextWeek}
	case "end of week", "end of the week":
		return DateExpr{Kind: KindEndOfWeek}
	}

	if m := inDaysRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return DateExpr{Kind: KindInNDays, N: n}
	}

	name := s
	next := false
	if rest, ok := strings.CutPrefix(name, "next "); ok {
		name = rest
		next = true
	} else if rest, ok := strings.CutPrefix(name, "this "); ok {
		name = rest
	}
	if wd, ok := weekdayNames[name]; ok {
		return DateExpr{Kind: KindWeekday, Weekday: wd, Next: next}
	}

	return DateExpr{Kind: KindUnrecognized}
}

// ResolveDate interprets a classified expression against "now" (a wall-clock
// time already in the business timezone) and returns midnight of the resolved
// date. KindUnrecognized resolves to today.
func ResolveDate(expr DateExpr, now time.Time) time.Time {
	today := Midnight(now)

	switch expr.Kind {
	case KindLiteral:
		return time.Date(expr.Year, expr.Month, expr.Day, 0, 0, 0, 0, now.Location())
	case KindTomorrow:
		return today.AddDate(0, 0, 1)
	case KindDayAfterTomorrow:
		return today.AddDate(0, 0, 2)
	case KindInNDays:
		return today.AddDate(0, 0, expr.N)
	case KindNextWeek:
		return today.AddDate(0, 0, daysUntil(now.Weekday(), time.Monday, true))
	case KindEndOfWeek:
		return today.AddDate(0, 0, daysUntil(now.Weekday(), time.Friday, true))
	case KindWeekday:
		offset := daysUntil(now.Weekday(), expr.Weekday, true)
		// "next Friday" spoken before this week's Friday rolls a full week
		// further; a day already behind us this week points there on its own.
		if expr.Next && offset < 7 && mondayIndex(expr.Weekday) > mondayIndex(now.Weekday()) {
			offset += 7
		}
		return today.AddDate(0, 0, offset)
	default:
		return today
	}
}

// ParseDate resolves a spoken date phrase to midnight in tz. The second return
// is false when the generic fallback or the degrade-to-today policy was used,
// so callers can log that the result is a best guess.
func ParseDate(text, tz string) (time.Time, bool) {
	loc := Location(tz)
	now := time.Now().In(loc)

	expr := ClassifyDate(text)
	if expr.Kind != KindUnrecognized {
		return ResolveDate(expr, now), true
	}

	s := strings.TrimSpace(text)
	layouts := []string{
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"01/02/2006",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return Midnight(t), false
		}
	}

	return Midnight(now), false
}

// ParseClock resolves a spoken time-of-day phrase. Recognized: 24-hour "HH:MM",
// "H[:MM]am/pm", and the keywords morning, noon, lunch, afternoon, evening and
// end of day. A bare hour 1-7 with no meridiem is assumed PM since business
// hours rarely start before 8. The second return is false when the 10:00
// default was used.
func ParseClock(text string) (hour, minute int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(text))

	switch s {
	case "morning":
		return 9, 0, true
	case "noon", "lunch":
		return 12, 0, true
	case "afternoon":
		return 14, 0, true
	case "evening", "end of day":
		return 16, 0, true
	}

	if m := clockRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm := 0
		if m[2] != "" {
			mm, _ = strconv.Atoi(m[2])
		}
		if mm > 59 {
			return 10, 0, false
		}
		switch m[3] {
		case "pm":
			if h >= 1 && h <= 11 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		default:
			if h >= 1 && h <= 7 {
				h += 12
			}
		}
		if h >= 0 && h <= 23 {
			return h, mm, true
		}
	}

	return 10, 0, false
}

// IsRangeRequest reports whether the phrase asks about a span of days rather
// than a single date.
func IsRangeRequest(text string) bool {
	s := strings.ToLower(text)
	if strings.Contains(s, "next week") || strings.Contains(s, "this week") {
		return true
	}
	for _, kw := range []string{"any day", "anytime", "any time", "sometime"} {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// daysUntil counts days from cur to the next occurrence of target. With
// rollSameDay, landing on cur itself pushes a full week out.
func daysUntil(cur, target time.Weekday, rollSameDay bool) int {
	d := (int(target) - int(cur) + 7) % 7
	if d == 0 && rollSameDay {
		d = 7
	}
	return d
}

// mondayIndex orders weekdays Monday-first so "earlier this week" comparisons
// follow the business week, not Go's Sunday-first numbering.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
