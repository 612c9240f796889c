package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// budgetRepository implements domain.BudgetRepository
type budgetRepository struct {
	db *DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *DB) domain.BudgetRepository {
	return &budgetRepository{db: db}
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var budget domain.Budget
	var amountStr string
	var budgetType string
	var categories pq.StringArray

	err := row.Scan(
		&budget.ID,
		&budget.Description,
		&amountStr,
		&categories,
		&budget.UserID,
		&budgetType,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	budget.Amount = amount
	budget.Categories = categories
	budget.Type = domain.BudgetType(budgetType)

	return &budget, nil
}

// GetByID retrieves a budget by its ID
func (r *budgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	query := `
		SELECT id, description, amount, categories, user_id, type
		FROM budgets
		WHERE id = $1
	`

	budget, err := scanBudget(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("budget not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get budget by ID: %w", err)
	}

	return budget, nil
}

// ListByGroup retrieves all budgets whose owner belongs to a household group
func (r *budgetRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Budget, error) {
	query := `
		SELECT b.id, b.description, b.amount, b.categories, b.user_id, b.type
		FROM budgets b
		JOIN users u ON u.id = b.user_id
		WHERE u.group_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// Create creates a new budget
func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (id, description, amount, categories, user_id, type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		budget.ID,
		budget.Description,
		budget.Amount.String(),
		pq.StringArray(budget.Categories),
		budget.UserID,
		string(budget.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// Update replaces an existing budget
func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET description = $2, amount = $3, categories = $4, user_id = $5, type = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		budget.ID,
		budget.Description,
		budget.Amount.String(),
		pq.StringArray(budget.Categories),
		budget.UserID,
		string(budget.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget not found: %s", budget.ID)
	}

	return nil
}

// Delete removes a budget by its ID
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM budgets WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}
