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

type BusinessRepo struct {
	db *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{
		db: db,
	}
}

func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	query := `
		SELECT id, name, timezone, slot_interval_minutes, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`

	var b domain.Business
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Name,
		&b.Timezone,
		&b.SlotIntervalMinutes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to fetch business: %w", err)
	}

	return &b, nil
}

func (r *BusinessRepo) GetHours(ctx context.Context, businessID string) (domain.BusinessHours, error) {
	query := `
		SELECT business_id, weekday, open_time, close_time, closed
		FROM business_hours
		WHERE business_id = $1
		ORDER BY weekday
	`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business hours: %w", err)
	}
	defer rows.Close()

	var hours domain.BusinessHours
	for rows.Next() {
		var d domain.DayHours
		var weekday int
		if err := rows.Scan(&d.BusinessID, &weekday, &d.OpenTime, &d.CloseTime, &d.Closed); err != nil {
			return nil, fmt.Errorf("failed to scan business hours row: %w", err)
		}
		d.Weekday = time.Weekday(weekday)
		hours = append(hours, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read business hours rows: %w", err)
	}

	return hours, nil
}

func (r *BusinessRepo) ReplaceHours(ctx context.Context, businessID string, hours []domain.UpdateDayHoursDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM business_hours WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("failed to clear business hours: %w", err)
	}

	insert := `
		INSERT INTO business_hours (business_id, weekday, open_time, close_time, closed)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, d := range hours {
		if _, err := tx.Exec(ctx, insert, businessID, d.Weekday, d.OpenTime, d.CloseTime, d.Closed); err != nil {
			return fmt.Errorf("failed to insert business hours: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
