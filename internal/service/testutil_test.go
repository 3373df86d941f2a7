package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/domain"
)

// fakeCatalog serves canned configuration so the availability and agent paths
// can be exercised without a store or a cache behind them.
type fakeCatalog struct {
	business      *domain.Business
	hours         domain.BusinessHours
	services      []domain.Service
	roster        []domain.Resource
	resourceHours map[string]domain.ResourceHours
	appointments  []domain.Appointment

	err error // when set, every read fails with it
}

func (f *fakeCatalog) Business(ctx context.Context, id string) (*domain.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.business == nil || f.business.ID != id {
		return nil, domain.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeCatalog) Hours(ctx context.Context, businessID string) (domain.BusinessHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hours, nil
}

func (f *fakeCatalog) Services(ctx context.Context, businessID string) ([]domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeCatalog) Service(ctx context.Context, businessID, serviceID string) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.services {
		if f.services[i].ID == serviceID {
			return &f.services[i], nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (f *fakeCatalog) Roster(ctx context.Context, businessID string) ([]domain.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeCatalog) ResourceHours(ctx context.Context, businessID, resourceID string) (domain.ResourceHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resourceHours[resourceID], nil
}

func (f *fakeCatalog) Appointments(ctx context.Context, businessID string, resourceID *string, from, to time.Time) ([]domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Appointment
	for _, a := range f.appointments {
		if a.StartAt.Before(to) && from.Before(a.EndAt) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ReplaceBusinessHours(ctx context.Context, businessID string, hours []domain.UpdateDayHoursDTO) error {
	return f.err
}

func (f *fakeCatalog) ReplaceResourceHours(ctx context.Context, businessID, resourceID string, hours []domain.UpdateResourceDayHoursDTO) error {
	return f.err
}

// fakeApptRepo is an in-memory appointment store that enforces the same
// overlap contract the Postgres exclusion constraint does: two active
// appointments for the same business and resource scope may not share time.
type fakeApptRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Appointment
	fail error // when set, every call fails with it
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{byID: make(map[string]domain.Appointment)}
}

func sameScope(a, b *string) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	return *a == *b
}

func (f *fakeApptRepo) overlapsLocked(candidate domain.Appointment, excludeID string) bool {
	for _, e := range f.byID {
		if e.ID == excludeID || !e.Active() {
			continue
		}
		if e.BusinessID != candidate.BusinessID || !sameScope(e.ResourceID, candidate.ResourceID) {
			continue
		}
		if candidate.StartAt.Before(e.EndAt) && e.StartAt.Before(candidate.EndAt) {
			return true
		}
	}
	return false
}

func (f *fakeApptRepo) Create(ctx context.Context, appt domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if f.overlapsLocked(appt, "") {
		return domain.ErrConflict
	}
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeApptRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	var out []domain.Appointment
	for _, a := range f.byID {
		if a.BusinessID != filter.BusinessID {
			continue
		}
		if filter.ExcludeCancelled && !a.Active() {
			continue
		}
		if filter.ResourceID != nil && !sameScope(a.ResourceID, filter.ResourceID) {
			continue
		}
		if !a.StartAt.Before(filter.To) || !filter.From.Before(a.EndAt) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = status
	f.byID[id] = a
	return nil
}

func (f *fakeApptRepo) UpdateTimes(ctx context.Context, id string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	moved := a
	moved.StartAt, moved.EndAt = start, end
	if f.overlapsLocked(moved, id) {
		return domain.ErrConflict
	}
	f.byID[id] = moved
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
