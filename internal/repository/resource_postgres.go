package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"frontdesk/internal/domain"
)

type ResourceRepo struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) *ResourceRepo {
	return &ResourceRepo{
		db: db,
	}
}

func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `
		SELECT id, business_id, name, created_at, updated_at
		FROM resources
		WHERE id = $1
	`

	var res domain.Resource
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.BusinessID,
		&res.Name,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}

	return &res, nil
}

func (r *ResourceRepo) ListByBusiness(ctx context.Context, businessID string) ([]domain.Resource, error) {
	query := `
		SELECT id, business_id, name, created_at, updated_at
		FROM resources
		WHERE business_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.BusinessID, &res.Name, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resource rows: %w", err)
	}

	return resources, nil
}

func (r *ResourceRepo) GetHours(ctx context.Context, resourceID string) (domain.ResourceHours, error) {
	query := `
		SELECT resource_id, business_id, weekday, start_time, end_time, off
		FROM resource_hours
		WHERE resource_id = $1
		ORDER BY weekday
	`

	rows, err := r.db.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resource hours: %w", err)
	}
	defer rows.Close()

	var hours domain.ResourceHours
	for rows.Next() {
		var d domain.ResourceDayHours
		var weekday int
		if err := rows.Scan(&d.ResourceID, &d.BusinessID, &weekday, &d.StartTime, &d.EndTime, &d.Off); err != nil {
			return nil, fmt.Errorf("failed to scan resource hours row: %w", err)
		}
		d.Weekday = time.Weekday(weekday)
		hours = append(hours, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resource hours rows: %w", err)
	}

	return hours, nil
}

func (r *ResourceRepo) ReplaceHours(ctx context.Context, businessID, resourceID string, hours []domain.UpdateResourceDayHoursDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resource_hours WHERE resource_id = $1`, resourceID); err != nil {
		return fmt.Errorf("failed to clear resource hours: %w", err)
	}

	insert := `
		INSERT INTO resource_hours (resource_id, business_id, weekday, start_time, end_time, off)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, d := range hours {
		if _, err := tx.Exec(ctx, insert, resourceID, businessID, d.Weekday, d.StartTime, d.EndTime, d.Off); err != nil {
			return fmt.Errorf("failed to insert resource hours: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
