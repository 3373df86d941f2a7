package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"frontdesk/internal/domain"
)

// exclusionViolation is the Postgres error code raised by the
// appointments_no_overlap constraint. It is the store-level backstop that
// closes the check-then-act race between concurrent booking commits.
const exclusionViolation = "23P01"

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) error {
	query := `
		INSERT INTO appointments (id, business_id, resource_id, service_id, customer_name, customer_phone, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	now := time.Now()
	_, err := r.db.Exec(ctx, query,
		appt.ID,
		appt.BusinessID,
		appt.ResourceID,
		appt.ServiceID,
		appt.CustomerName,
		appt.CustomerPhone,
		appt.StartAt,
		appt.EndAt,
		appt.Status,
		now,
	)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `
		SELECT id, business_id, resource_id, service_id, customer_name, customer_phone, start_at, end_at, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	var a domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.BusinessID,
		&a.ResourceID,
		&a.ServiceID,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	return &a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query := `
		SELECT id, business_id, resource_id, service_id, customer_name, customer_phone, start_at, end_at, status, created_at, updated_at
		FROM appointments
		WHERE business_id = $1 AND start_at < $2 AND end_at > $3
	`
	args := []any{filter.BusinessID, filter.To, filter.From}

	if filter.ResourceID != nil {
		args = append(args, *filter.ResourceID)
		query += fmt.Sprintf(" AND resource_id = $%d", len(args))
	}
	if filter.ExcludeCancelled {
		query += " AND status != 'cancelled'"
	}
	query += " ORDER BY start_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.BusinessID,
			&a.ResourceID,
			&a.ServiceID,
			&a.CustomerName,
			&a.CustomerPhone,
			&a.StartAt,
			&a.EndAt,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}

	return nil
}

func (r *AppointmentRepo) UpdateTimes(ctx context.Context, id string, start, end time.Time) error {
	query := `
		UPDATE appointments
		SET start_at = $2, end_at = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, start, end, time.Now())
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to update appointment times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}

	return nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}
