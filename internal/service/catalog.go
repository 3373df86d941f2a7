package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/cache"
	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// CatalogServiceImpl is the read-through layer over the persistent store.
// Every read checks the cache first; every store call carries an explicit
// timeout so a slow store degrades to ErrStoreUnavailable instead of hanging
// a live phone call.
type CatalogServiceImpl struct {
	repos        *repository.Repositories
	cache        *cache.Cache
	storeTimeout time.Duration
	logger       *zap.Logger
}

func NewCatalogService(
	repos *repository.Repositories,
	c *cache.Cache,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repos:        repos,
		cache:        c,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// notFound errors pass through untouched; anything else from the store is a
// degraded read.
var passthrough = []error{
	domain.ErrBusinessNotFound,
	domain.ErrResourceNotFound,
	domain.ErrServiceNotFound,
	domain.ErrAppointmentNotFound,
}

func (s *CatalogServiceImpl) storeErr(op string, err error) error {
	for _, p := range passthrough {
		if errors.Is(err, p) {
			return p
		}
	}
	s.logger.Error("store call failed", zap.String("op", op), zap.Error(err))
	return domain.ErrStoreUnavailable
}

func (s *CatalogServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *CatalogServiceImpl) Business(ctx context.Context, id string) (*domain.Business, error) {
	if b, ok := cache.GetAs[*domain.Business](s.cache, cache.EntityBusiness, id, ""); ok {
		return b, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.repos.Business.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("business.get", err)
	}

	s.cache.Set(cache.EntityBusiness, id, "", b)
	return b, nil
}

func (s *CatalogServiceImpl) Hours(ctx context.Context, businessID string) (domain.BusinessHours, error) {
	if h, ok := cache.GetAs[domain.BusinessHours](s.cache, cache.EntityHours, businessID, ""); ok {
		return h, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	h, err := s.repos.Business.GetHours(ctx, businessID)
	if err != nil {
		return nil, s.storeErr("business.hours", err)
	}

	s.cache.Set(cache.EntityHours, businessID, "", h)
	return h, nil
}

func (s *CatalogServiceImpl) Services(ctx context.Context, businessID string) ([]domain.Service, error) {
	if v, ok := cache.GetAs[[]domain.Service](s.cache, cache.EntityServices, businessID, ""); ok {
		return v, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repos.Service.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, s.storeErr("service.list", err)
	}

	s.cache.Set(cache.EntityServices, businessID, "", v)
	return v, nil
}

func (s *CatalogServiceImpl) Service(ctx context.Context, businessID, serviceID string) (*domain.Service, error) {
	services, err := s.Services(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == serviceID {
			return &services[i], nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (s *CatalogServiceImpl) Roster(ctx context.Context, businessID string) ([]domain.Resource, error) {
	if v, ok := cache.GetAs[[]domain.Resource](s.cache, cache.EntityResources, businessID, ""); ok {
		return v, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repos.Resource.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, s.storeErr("resource.list", err)
	}

	s.cache.Set(cache.EntityResources, businessID, "", v)
	return v, nil
}

func (s *CatalogServiceImpl) ResourceHours(ctx context.Context, businessID, resourceID string) (domain.ResourceHours, error) {
	if v, ok := cache.GetAs[domain.ResourceHours](s.cache, cache.EntityResourceHours, businessID, resourceID); ok {
		return v, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repos.Resource.GetHours(ctx, resourceID)
	if err != nil {
		return nil, s.storeErr("resource.hours", err)
	}

	s.cache.Set(cache.EntityResourceHours, businessID, resourceID, v)
	return v, nil
}

func (s *CatalogServiceImpl) Appointments(ctx context.Context, businessID string, resourceID *string, from, to time.Time) ([]domain.Appointment, error) {
	qualifier := from.Format("2006-01-02")
	if resourceID != nil {
		qualifier = *resourceID + "|" + qualifier
	}
	if v, ok := cache.GetAs[[]domain.Appointment](s.cache, cache.EntityAppointments, businessID, qualifier); ok {
		return v, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repos.Appointment.List(ctx, domain.AppointmentFilter{
		BusinessID:       businessID,
		ResourceID:       resourceID,
		From:             from,
		To:               to,
		ExcludeCancelled: true,
	})
	if err != nil {
		return nil, s.storeErr("appointment.list", err)
	}

	s.cache.Set(cache.EntityAppointments, businessID, qualifier, v)
	return v, nil
}

func (s *CatalogServiceImpl) ReplaceBusinessHours(ctx context.Context, businessID string, hours []domain.UpdateDayHoursDTO) error {
	if err := validateDayHours(hours); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repos.Business.ReplaceHours(ctx, businessID, hours); err != nil {
		return s.storeErr("business.replaceHours", err)
	}

	s.cache.Invalidate(businessID, cache.EntityHours)
	return nil
}

func (s *CatalogServiceImpl) ReplaceResourceHours(ctx context.Context, businessID, resourceID string, hours []domain.UpdateResourceDayHoursDTO) error {
	for _, d := range hours {
		if d.Off {
			continue
		}
		if _, err := domain.MinuteOfDay(d.StartTime); err != nil {
			return fmt.Errorf("invalid start time for weekday %d", d.Weekday)
		}
		if _, err := domain.MinuteOfDay(d.EndTime); err != nil {
			return fmt.Errorf("invalid end time for weekday %d", d.Weekday)
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repos.Resource.ReplaceHours(ctx, businessID, resourceID, hours); err != nil {
		return s.storeErr("resource.replaceHours", err)
	}

	s.cache.Invalidate(businessID, cache.EntityResourceHours)
	return nil
}

func validateDayHours(hours []domain.UpdateDayHoursDTO) error {
	seen := make(map[int]bool)
	for _, d := range hours {
		if seen[d.Weekday] {
			return fmt.Errorf("duplicate entry for weekday %d", d.Weekday)
		}
		seen[d.Weekday] = true
		if d.Closed {
			continue
		}
		if _, err := domain.MinuteOfDay(d.OpenTime); err != nil {
			return fmt.Errorf("invalid open time for weekday %d", d.Weekday)
		}
		if _, err := domain.MinuteOfDay(d.CloseTime); err != nil {
			return fmt.Errorf("invalid close time for weekday %d", d.Weekday)
		}
	}
	return nil
}
