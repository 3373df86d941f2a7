package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"frontdesk/internal/domain"
)

type Repositories struct {
	Business    BusinessRepository
	Resource    ResourceRepository
	Service     ServiceRepository
	Appointment AppointmentRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Business:    NewBusinessRepository(db),
		Resource:    NewResourceRepository(db),
		Service:     NewServiceRepository(db),
		Appointment: NewAppointmentRepository(db),
	}
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetHours(ctx context.Context, businessID string) (domain.BusinessHours, error)
	ReplaceHours(ctx context.Context, businessID string, hours []domain.UpdateDayHoursDTO) error
}

type ResourceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Resource, error)
	GetHours(ctx context.Context, resourceID string) (domain.ResourceHours, error)
	ReplaceHours(ctx context.Context, businessID, resourceID string, hours []domain.UpdateResourceDayHoursDTO) error
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Service, error)
}

type AppointmentRepository interface {
	// Create returns domain.ErrConflict when the store's overlap constraint
	// rejects the insert.
	Create(ctx context.Context, appt domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	// UpdateTimes returns domain.ErrConflict when the new window overlaps.
	UpdateTimes(ctx context.Context, id string, start, end time.Time) error
}
