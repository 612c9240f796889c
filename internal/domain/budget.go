package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetType represents the recurrence scheme of a budget
type BudgetType string

const (
	// BudgetTypeMonthly is the only recurrence scheme currently supported.
	BudgetTypeMonthly BudgetType = "monthly"
)

// Budget represents a recurring spending ceiling over a set of categories.
// A transaction counts toward a budget when it belongs to the budget owner
// and its category is a member of Categories.
type Budget struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // planned ceiling for one period
	Categories  []string
	UserID      uuid.UUID
	Type        BudgetType
}

// OwnedBy returns the identifier of the user who owns this budget.
func (b Budget) OwnedBy() uuid.UUID {
	return b.UserID
}

// TracksCategory reports whether the given category key is part of this budget.
func (b *Budget) TracksCategory(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Validate ensures the budget adheres to domain rules.
// Returns an error if validation fails.
func (b *Budget) Validate() error {
	if b.Amount.IsNegative() {
		return errors.New("budget amount must not be negative")
	}

	if b.Type != BudgetTypeMonthly {
		return errors.New("budget type must be monthly")
	}

	if len(b.Categories) == 0 {
		return errors.New("budget must track at least one category")
	}

	return nil
}
