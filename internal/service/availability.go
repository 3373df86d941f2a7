package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/timeparse"
)

const (
	// rangeDayBudget bounds how many calendar days a range plan may examine.
	rangeDayBudget = 14
	// rangeOpenDays is how many qualifying days a range plan collects.
	rangeOpenDays = 5

	noonMinute      = 12 * 60
	afternoonMinute = 17 * 60
)

type AvailabilityServiceImpl struct {
	catalog CatalogService
	logger  *zap.Logger
}

func NewAvailabilityService(catalog CatalogService, logger *zap.Logger) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		catalog: catalog,
		logger:  logger,
	}
}

type DayQuery struct {
	BusinessID      string
	Date            time.Time // midnight in the business timezone
	DurationMinutes int
	ResourceID      *string
}

type RangeQuery struct {
	BusinessID      string
	Hint            string // the caller's phrase, e.g. "next week" or "any day"
	DurationMinutes int
	ResourceID      *string
}

func (s *AvailabilityServiceImpl) DaySlots(ctx context.Context, q DayQuery) (*domain.DayAvailability, error) {
	biz, err := s.catalog.Business(ctx, q.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timeparse.Location(biz.Timezone)
	now := time.Now().In(loc)
	if q.Date.Before(timeparse.Midnight(now)) {
		return nil, domain.ErrPastDate
	}

	minutes, closed, err := s.dayMinutes(ctx, biz, q, now)
	if err != nil {
		return nil, err
	}
	if closed {
		return &domain.DayAvailability{Date: q.Date, Closed: true, Slots: []string{}}, nil
	}
	if len(minutes) == 0 {
		return nil, domain.ErrFullyBooked
	}

	slots := make([]string, 0, len(minutes))
	for _, m := range minutes {
		slots = append(slots, FormatMinute(m))
	}
	return &domain.DayAvailability{Date: q.Date, Slots: slots}, nil
}

// dayMinutes is the shared core of the single-day and range paths. It reads
// through the cache for hours, overrides and bookings, and returns the open
// slot starts as minute offsets.
func (s *AvailabilityServiceImpl) dayMinutes(ctx context.Context, biz *domain.Business, q DayQuery, now time.Time) ([]int, bool, error) {
	hours, err := s.catalog.Hours(ctx, q.BusinessID)
	if err != nil {
		return nil, false, err
	}
	if len(hours) == 0 {
		return nil, false, domain.ErrConfigurationMissing
	}

	rule := hours.Rule(q.Date.Weekday())
	if q.ResourceID != nil {
		overrides, err := s.catalog.ResourceHours(ctx, q.BusinessID, *q.ResourceID)
		if err != nil {
			return nil, false, err
		}
		rule = overrides.Rule(q.Date.Weekday(), hours)
	}
	if !rule.Open {
		return nil, true, nil
	}

	bookings, err := s.catalog.Appointments(ctx, q.BusinessID, q.ResourceID, q.Date, q.Date.AddDate(0, 0, 1))
	if err != nil {
		return nil, false, err
	}

	return daySlotMinutes(q.Date, q.DurationMinutes, rule, biz.SlotInterval(), bookings, now), false, nil
}

// PlanRange walks forward day by day until enough open days are found or the
// day budget runs out. Each qualifying day is trimmed to at most two
// representative times so the phone agent can speak the result.
func (s *AvailabilityServiceImpl) PlanRange(ctx context.Context, q RangeQuery) ([]domain.DayOption, error) {
	biz, err := s.catalog.Business(ctx, q.BusinessID)
	if err != nil {
		return nil, err
	}

	loc := timeparse.Location(biz.Timezone)
	now := time.Now().In(loc)
	start := timeparse.Midnight(now).AddDate(0, 0, 1)
	if strings.Contains(strings.ToLower(q.Hint), "next week") {
		start = timeparse.ResolveDate(timeparse.DateExpr{Kind: timeparse.KindNextWeek}, now)
	}

	var options []domain.DayOption
	for i := 0; i < rangeDayBudget && len(options) < rangeOpenDays; i++ {
		date := start.AddDate(0, 0, i)
		dq := DayQuery{
			BusinessID:      q.BusinessID,
			Date:            date,
			DurationMinutes: q.DurationMinutes,
			ResourceID:      q.ResourceID,
		}
		minutes, closed, err := s.dayMinutes(ctx, biz, dq, now)
		if err != nil {
			return nil, err
		}
		if closed || len(minutes) == 0 {
			continue
		}

		options = append(options, domain.DayOption{
			Day:   date.Weekday().String(),
			Date:  date.Format("January 2"),
			Slots: representativeSlots(minutes),
		})
	}

	if len(options) == 0 {
		return nil, domain.ErrFullyBooked
	}
	return options, nil
}

// representativeSlots picks up to two times for conversational presentation:
// the first opening before noon and the first in the 12:00-17:00 window.
func representativeSlots(minutes []int) []string {
	var out []string
	for _, m := range minutes {
		if m < noonMinute {
			out = append(out, FormatMinute(m))
			break
		}
	}
	for _, m := range minutes {
		if m >= noonMinute && m < afternoonMinute {
			out = append(out, FormatMinute(m))
			break
		}
	}
	if len(out) == 0 {
		out = append(out, FormatMinute(minutes[0]))
	}
	return out
}
