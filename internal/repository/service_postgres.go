package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"frontdesk/internal/domain"
)

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{
		db: db,
	}
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, business_id, name, duration_minutes, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var s domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.DurationMinutes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}

	return &s, nil
}

func (r *ServiceRepo) ListByBusiness(ctx context.Context, businessID string) ([]domain.Service, error) {
	query := `
		SELECT id, business_id, name, duration_minutes, created_at, updated_at
		FROM services
		WHERE business_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read service rows: %w", err)
	}

	return services, nil
}
