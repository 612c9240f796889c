package domain

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// ListByUser retrieves all transactions owned by a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error)

	// ListByGroup retrieves all transactions in a household group, newest first
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Update replaces an existing transaction
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	// GetByID retrieves a budget by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Budget, error)

	// ListByGroup retrieves all budgets whose owner belongs to a household group
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Budget, error)

	// Create creates a new budget
	Create(ctx context.Context, budget *Budget) error

	// Update replaces an existing budget
	Update(ctx context.Context, budget *Budget) error

	// Delete removes a budget by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// PeriodRepository defines the interface for budget period persistence operations
type PeriodRepository interface {
	// ListByUser retrieves all recorded periods for a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BudgetPeriod, error)

	// Create creates a new period
	Create(ctx context.Context, period *BudgetPeriod) error

	// Update replaces an existing period (used to close the current one)
	Update(ctx context.Context, period *BudgetPeriod) error
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ListByGroup retrieves all accounts in a household group
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListByGroup retrieves all users in a household group
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]User, error)
}
