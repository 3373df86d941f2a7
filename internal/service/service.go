package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/internal/cache"
	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

type Deps struct {
	Repos     *repository.Repositories
	Cache     *cache.Cache
	Coalescer *Coalescer
	Logger    *zap.Logger
	Config    *config.Config
}

type Services struct {
	Catalog      CatalogService
	Availability AvailabilityService
	Booking      BookingService
	Agent        AgentService

	cache     *cache.Cache
	coalescer *Coalescer
}

func NewServices(deps Deps) *Services {
	catalog := NewCatalogService(deps.Repos, deps.Cache, deps.Config.Engine.StoreTimeout, deps.Logger)
	availability := NewAvailabilityService(catalog, deps.Logger)
	booking := NewBookingService(deps.Repos.Appointment, catalog, deps.Cache, deps.Config.Engine.StoreTimeout, deps.Logger)
	agent := NewAgentService(catalog, availability, booking, deps.Logger)

	return &Services{
		Catalog:      catalog,
		Availability: availability,
		Booking:      booking,
		Agent:        agent,
		cache:        deps.Cache,
		coalescer:    deps.Coalescer,
	}
}

// InvalidateAfterWrite is called by any external mutation path so the cache
// never serves configuration that was just edited. An empty entity clears
// everything cached for the business.
func (s *Services) InvalidateAfterWrite(businessID string, entity cache.EntityType) {
	if entity == "" {
		s.cache.Invalidate(businessID)
		return
	}
	s.cache.Invalidate(businessID, entity)
}

// NotifyConfigChanged routes a schedule-affecting edit through the coalescer
// so bursts of micro-edits produce a single downstream refresh.
func (s *Services) NotifyConfigChanged(businessID string) {
	if s.coalescer != nil {
		s.coalescer.ScheduleRefresh(businessID)
	}
}

type CatalogService interface {
	Business(ctx context.Context, id string) (*domain.Business, error)
	Hours(ctx context.Context, businessID string) (domain.BusinessHours, error)
	Services(ctx context.Context, businessID string) ([]domain.Service, error)
	Service(ctx context.Context, businessID, serviceID string) (*domain.Service, error)
	Roster(ctx context.Context, businessID string) ([]domain.Resource, error)
	ResourceHours(ctx context.Context, businessID, resourceID string) (domain.ResourceHours, error)
	Appointments(ctx context.Context, businessID string, resourceID *string, from, to time.Time) ([]domain.Appointment, error)
	ReplaceBusinessHours(ctx context.Context, businessID string, hours []domain.UpdateDayHoursDTO) error
	ReplaceResourceHours(ctx context.Context, businessID, resourceID string, hours []domain.UpdateResourceDayHoursDTO) error
}

type AvailabilityService interface {
	DaySlots(ctx context.Context, q DayQuery) (*domain.DayAvailability, error)
	PlanRange(ctx context.Context, q RangeQuery) ([]domain.DayOption, error)
}

type BookingService interface {
	Commit(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, dto domain.RescheduleDTO) (*domain.BookingResult, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
}

type AgentService interface {
	CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error)
	BookAppointment(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error)
}
