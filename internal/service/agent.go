package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"frontdesk/internal/domain"
	"frontdesk/internal/timeparse"
)

// AgentServiceImpl is the single entry point the conversational layer calls.
// It resolves spoken resource/service selectors, dispatches between the
// single-day and range paths, and turns every engine error into a result the
// agent can speak, with a next actionable step.
type AgentServiceImpl struct {
	catalog      CatalogService
	availability AvailabilityService
	booking      BookingService
	logger       *zap.Logger
}

func NewAgentService(
	catalog CatalogService,
	availability AvailabilityService,
	booking BookingService,
	logger *zap.Logger,
) *AgentServiceImpl {
	return &AgentServiceImpl{
		catalog:      catalog,
		availability: availability,
		booking:      booking,
		logger:       logger,
	}
}

func (s *AgentServiceImpl) CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	biz, err := s.catalog.Business(ctx, q.BusinessID)
	if err != nil {
		return availabilityFailure(err), nil
	}

	resourceID, rosterNames, err := s.resolveResource(ctx, q.BusinessID, q.ResourceID, q.ResourceName)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return &domain.AvailabilityResult{
				Available:  false,
				Message:    fmt.Sprintf("I couldn't find %q on the staff list.", q.ResourceName),
				Suggestion: rosterSuggestion(rosterNames),
			}, nil
		}
		return availabilityFailure(err), nil
	}

	duration := domain.DefaultServiceDurationMinutes
	if q.ServiceID != "" {
		svc, err := s.catalog.Service(ctx, q.BusinessID, q.ServiceID)
		if err != nil {
			return availabilityFailure(err), nil
		}
		duration = svc.Duration()
	}

	if timeparse.IsRangeRequest(q.Expression) {
		days, err := s.availability.PlanRange(ctx, RangeQuery{
			BusinessID:      q.BusinessID,
			Hint:            q.Expression,
			DurationMinutes: duration,
			ResourceID:      resourceID,
		})
		if err != nil {
			return availabilityFailure(err), nil
		}
		return &domain.AvailabilityResult{
			Available: true,
			Days:      days,
			Message:   fmt.Sprintf("There are openings on %d days coming up.", len(days)),
		}, nil
	}

	date, exact := timeparse.ParseDate(q.Expression, biz.Timezone)
	if !exact {
		s.logger.Warn("date expression degraded to best guess",
			zap.String("text", q.Expression),
			zap.String("business_id", q.BusinessID))
	}

	day, err := s.availability.DaySlots(ctx, DayQuery{
		BusinessID:      q.BusinessID,
		Date:            date,
		DurationMinutes: duration,
		ResourceID:      resourceID,
	})
	if err != nil {
		return availabilityFailure(err), nil
	}
	if day.Closed {
		return &domain.AvailabilityResult{
			Available:  false,
			Date:       date.Format("January 2"),
			Day:        date.Weekday().String(),
			Message:    fmt.Sprintf("We're closed on %s.", date.Format("Monday, January 2")),
			Suggestion: "Ask whether another day would work.",
		}, nil
	}

	return &domain.AvailabilityResult{
		Available: true,
		Date:      date.Format("January 2"),
		Day:       date.Weekday().String(),
		Slots:     day.Slots,
		Message:   fmt.Sprintf("%s has %d open times.", date.Format("Monday, January 2"), len(day.Slots)),
	}, nil
}

func (s *AgentServiceImpl) BookAppointment(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error) {
	resourceID, rosterNames, err := s.resolveResource(ctx, req.BusinessID, req.ResourceID, req.ResourceName)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return &domain.BookingResult{
				Committed:  false,
				Message:    fmt.Sprintf("I couldn't find %q on the staff list.", req.ResourceName),
				Suggestion: rosterSuggestion(rosterNames),
			}, nil
		}
		return bookingFailure(err), nil
	}
	if resourceID != nil {
		req.ResourceID = *resourceID
	}

	if req.ServiceID == "" && req.ServiceName != "" {
		services, err := s.catalog.Services(ctx, req.BusinessID)
		if err != nil {
			return bookingFailure(err), nil
		}
		matched := false
		for i := range services {
			if matchesName(services[i].Name, req.ServiceName) {
				req.ServiceID = services[i].ID
				matched = true
				break
			}
		}
		if !matched {
			names := make([]string, 0, len(services))
			for _, svc := range services {
				names = append(names, svc.Name)
			}
			return &domain.BookingResult{
				Committed:  false,
				Message:    fmt.Sprintf("I couldn't find a service called %q.", req.ServiceName),
				Suggestion: "Offer one of: " + strings.Join(names, ", ") + ".",
			}, nil
		}
	}

	result, err := s.booking.Commit(ctx, req)
	if err != nil {
		return bookingFailure(err), nil
	}
	return result, nil
}

// resolveResource turns an id or a spoken name into a roster resource id.
// Both empty means no per-resource scoping. On a failed name match the roster
// names come back so the caller can offer them.
func (s *AgentServiceImpl) resolveResource(ctx context.Context, businessID, resourceID, resourceName string) (*string, []string, error) {
	if resourceID != "" {
		return &resourceID, nil, nil
	}
	if resourceName == "" {
		return nil, nil, nil
	}

	roster, err := s.catalog.Roster(ctx, businessID)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(roster))
	for _, r := range roster {
		names = append(names, r.Name)
	}
	for i := range roster {
		if strings.EqualFold(roster[i].Name, resourceName) {
			return &roster[i].ID, names, nil
		}
	}
	for i := range roster {
		if matchesName(roster[i].Name, resourceName) {
			return &roster[i].ID, names, nil
		}
	}
	return nil, names, domain.ErrResourceNotFound
}

// matchesName is the fuzzy roster match: case-insensitive containment in
// either direction, so "Dr. Amara Osei" matches a caller saying "amara".
func matchesName(candidate, spoken string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	sp := strings.ToLower(strings.TrimSpace(spoken))
	if c == "" || sp == "" {
		return false
	}
	return strings.Contains(c, sp) || strings.Contains(sp, c)
}

func availabilityFailure(err error) *domain.AvailabilityResult {
	r := &domain.AvailabilityResult{Available: false}
	switch {
	case errors.Is(err, domain.ErrPastDate):
		r.Message = "That date has already passed."
		r.Suggestion = "Ask for a date coming up instead."
	case errors.Is(err, domain.ErrConfigurationMissing):
		r.Message = "Business hours aren't set up yet, so I can't check times."
		r.Suggestion = "Offer to take a message and have someone call back."
	case errors.Is(err, domain.ErrFullyBooked):
		r.Message = "Everything is taken in that window."
		r.Suggestion = "Offer to check a different day or week."
	case errors.Is(err, domain.ErrServiceNotFound):
		r.Message = "I couldn't find that service."
		r.Suggestion = "Ask which service they'd like from the menu."
	case errors.Is(err, domain.ErrBusinessNotFound):
		r.Message = "I couldn't load this business's calendar."
		r.Suggestion = "Offer to take a message."
	default:
		r.Message = "I'm having technical difficulty checking the calendar."
		r.Suggestion = "Offer to take a message and have someone call back."
	}
	return r
}

func bookingFailure(err error) *domain.BookingResult {
	r := &domain.BookingResult{Committed: false}
	switch {
	case errors.Is(err, domain.ErrPastDate):
		r.Message = "That date has already passed."
		r.Suggestion = "Ask for a date coming up instead."
	case errors.Is(err, domain.ErrConfigurationMissing):
		r.Message = "Business hours aren't set up yet, so I can't book this."
		r.Suggestion = "Offer to take a message and have someone call back."
	case errors.Is(err, domain.ErrServiceNotFound):
		r.Message = "I couldn't find that service."
		r.Suggestion = "Ask which service they'd like from the menu."
	case errors.Is(err, domain.ErrBusinessNotFound):
		r.Message = "I couldn't load this business's calendar."
		r.Suggestion = "Offer to take a message."
	default:
		r.Message = "I'm having technical difficulty booking right now."
		r.Suggestion = "Offer to take a message and have someone call back."
	}
	return r
}

func rosterSuggestion(names []string) string {
	if len(names) == 0 {
		return "Offer to book with whoever is available."
	}
	return "Offer one of: " + strings.Join(names, ", ") + "."
}
