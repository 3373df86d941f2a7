package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontdesk/internal/cache"
	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
	"frontdesk/internal/timeparse"
)

// BookingServiceImpl is the conflict guard in front of the store's write
// contract. It re-reads live bookings directly from the repository (never the
// cache) immediately before commit; the store's overlap constraint is the
// final arbiter for commits that race past this check.
type BookingServiceImpl struct {
	appointments repository.AppointmentRepository
	catalog      CatalogService
	cache        *cache.Cache
	storeTimeout time.Duration
	logger       *zap.Logger
}

func NewBookingService(
	appointments repository.AppointmentRepository,
	catalog CatalogService,
	c *cache.Cache,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		appointments: appointments,
		catalog:      catalog,
		cache:        c,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

func (s *BookingServiceImpl) Commit(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error) {
	biz, err := s.catalog.Business(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	date, exact := timeparse.ParseDate(req.Date, biz.Timezone)
	if !exact {
		s.logger.Warn("date expression degraded to best guess",
			zap.String("text", req.Date),
			zap.String("business_id", req.BusinessID))
	}
	if date.Before(timeparse.TodayIn(biz.Timezone)) {
		return nil, domain.ErrPastDate
	}

	hour, minute, exact := timeparse.ParseClock(req.Time)
	if !exact {
		s.logger.Warn("time expression degraded to default",
			zap.String("text", req.Time),
			zap.String("business_id", req.BusinessID))
	}

	var svc *domain.Service
	if req.ServiceID != "" {
		svc, err = s.catalog.Service(ctx, req.BusinessID, req.ServiceID)
		if err != nil {
			return nil, err
		}
	}
	duration := domain.ResolveDuration(svc, req.EstimatedMinutes)

	start := timeparse.Absolute(date.Year(), date.Month(), date.Day(), hour, minute, biz.Timezone)
	end := start.Add(time.Duration(duration) * time.Minute)

	var resourceID *string
	if req.ResourceID != "" {
		resourceID = &req.ResourceID
	}

	if conflict, err := s.findConflict(ctx, req.BusinessID, resourceID, date, start, end, ""); err != nil {
		return nil, err
	} else if conflict != nil {
		return conflictResult(conflict.StartAt.In(start.Location())), nil
	}

	var serviceID *string
	if svc != nil {
		serviceID = &svc.ID
	}
	appt := domain.Appointment{
		ID:            uuid.NewString(),
		BusinessID:    req.BusinessID,
		ResourceID:    resourceID,
		ServiceID:     serviceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartAt:       start,
		EndAt:         end,
		Status:        domain.AppointmentStatusScheduled,
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.appointments.Create(writeCtx, appt); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the commit race; the winner holds this exact window.
			return conflictResult(start), nil
		}
		s.logger.Error("appointment insert failed", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}

	s.cache.Invalidate(req.BusinessID, cache.EntityAppointments)

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("business_id", req.BusinessID),
		zap.Time("start_at", start))

	return &domain.BookingResult{
		Committed:     true,
		AppointmentID: appt.ID,
		StartAt:       start,
		EndAt:         end,
		Message:       fmt.Sprintf("Booked for %s at %s.", start.Format("Monday, January 2"), start.Format("3:04 PM")),
	}, nil
}

// findConflict re-reads live bookings in a tight window around the target day
// and returns the first overlap, or nil. excludeID skips the appointment being
// rescheduled.
func (s *BookingServiceImpl) findConflict(ctx context.Context, businessID string, resourceID *string, day, start, end time.Time, excludeID string) (*domain.Appointment, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	existing, err := s.appointments.List(readCtx, domain.AppointmentFilter{
		BusinessID:       businessID,
		ResourceID:       resourceID,
		From:             day,
		To:               day.AddDate(0, 0, 1),
		ExcludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("pre-commit booking read failed", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}

	for i := range existing {
		e := &existing[i]
		if e.ID == excludeID {
			continue
		}
		if start.Before(e.EndAt) && e.StartAt.Before(end) {
			return e, nil
		}
	}
	return nil, nil
}

func conflictResult(at time.Time) *domain.BookingResult {
	clock := at.Format("3:04 PM")
	return &domain.BookingResult{
		Committed:  false,
		ConflictAt: clock,
		Message:    fmt.Sprintf("That time is already taken; there is a booking at %s.", clock),
		Suggestion: "Offer a different time on the same day, or another day.",
	}
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	appt, err := s.appointments.GetByID(readCtx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			return nil, err
		}
		s.logger.Error("appointment read failed", zap.String("id", id), zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return appt, nil
}

func (s *BookingServiceImpl) Confirm(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.AppointmentStatusConfirmed)
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.AppointmentStatusCancelled)
}

func (s *BookingServiceImpl) transition(ctx context.Context, id string, next domain.AppointmentStatus) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !appt.CanTransitionTo(next) {
		return fmt.Errorf("appointment is %s and cannot become %s", appt.Status, next)
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.appointments.UpdateStatus(writeCtx, id, next); err != nil {
		s.logger.Error("appointment status update failed", zap.String("id", id), zap.Error(err))
		return domain.ErrStoreUnavailable
	}

	s.cache.Invalidate(appt.BusinessID, cache.EntityAppointments)
	return nil
}

// Reschedule keeps the appointment's duration and moves its window, guarded by
// the same fresh-read conflict check as a new commit.
func (s *BookingServiceImpl) Reschedule(ctx context.Context, id string, dto domain.RescheduleDTO) (*domain.BookingResult, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Active() {
		return nil, errors.New("a cancelled appointment cannot be rescheduled")
	}

	biz, err := s.catalog.Business(ctx, appt.BusinessID)
	if err != nil {
		return nil, err
	}

	date, exact := timeparse.ParseDate(dto.Date, biz.Timezone)
	if !exact {
		s.logger.Warn("date expression degraded to best guess", zap.String("text", dto.Date))
	}
	if date.Before(timeparse.TodayIn(biz.Timezone)) {
		return nil, domain.ErrPastDate
	}
	hour, minute, _ := timeparse.ParseClock(dto.Time)

	duration := appt.EndAt.Sub(appt.StartAt)
	start := timeparse.Absolute(date.Year(), date.Month(), date.Day(), hour, minute, biz.Timezone)
	end := start.Add(duration)

	if conflict, err := s.findConflict(ctx, appt.BusinessID, appt.ResourceID, date, start, end, appt.ID); err != nil {
		return nil, err
	} else if conflict != nil {
		return conflictResult(conflict.StartAt.In(start.Location())), nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.appointments.UpdateTimes(writeCtx, id, start, end); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return conflictResult(start), nil
		}
		s.logger.Error("appointment reschedule failed", zap.String("id", id), zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}

	s.cache.Invalidate(appt.BusinessID, cache.EntityAppointments)

	return &domain.BookingResult{
		Committed:     true,
		AppointmentID: appt.ID,
		StartAt:       start,
		EndAt:         end,
		Message:       fmt.Sprintf("Moved to %s at %s.", start.Format("Monday, January 2"), start.Format("3:04 PM")),
	}, nil
}
