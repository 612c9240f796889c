package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// periodRepository implements domain.PeriodRepository
type periodRepository struct {
	db *DB
}

// NewPeriodRepository creates a new budget period repository
func NewPeriodRepository(db *DB) domain.PeriodRepository {
	return &periodRepository{db: db}
}

// ListByUser retrieves all recorded periods for a user, newest first
func (r *periodRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BudgetPeriod, error) {
	query := `
		SELECT id, user_id, start_date, end_date, is_active
		FROM budget_periods
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.BudgetPeriod
	for rows.Next() {
		var period domain.BudgetPeriod
		var endDate sql.NullString

		err := rows.Scan(
			&period.ID,
			&period.UserID,
			&period.StartDate,
			&endDate,
			&period.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}

		if endDate.Valid {
			period.EndDate = &endDate.String
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate periods: %w", err)
	}

	return periods, nil
}

// Create creates a new period
func (r *periodRepository) Create(ctx context.Context, period *domain.BudgetPeriod) error {
	query := `
		INSERT INTO budget_periods (id, user_id, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`

	var endDate interface{}
	if period.EndDate != nil {
		endDate = *period.EndDate
	}

	_, err := r.db.ExecContext(ctx, query,
		period.ID,
		period.UserID,
		period.StartDate,
		endDate,
		period.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create period: %w", err)
	}

	return nil
}

// Update replaces an existing period
func (r *periodRepository) Update(ctx context.Context, period *domain.BudgetPeriod) error {
	query := `
		UPDATE budget_periods
		SET start_date = $2, end_date = $3, is_active = $4
		WHERE id = $1
	`

	var endDate interface{}
	if period.EndDate != nil {
		endDate = *period.EndDate
	}

	result, err := r.db.ExecContext(ctx, query,
		period.ID,
		period.StartDate,
		endDate,
		period.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update period: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("period not found: %s", period.ID)
	}

	return nil
}
