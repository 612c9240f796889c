package domain

import "github.com/google/uuid"

// BudgetPeriod represents a recorded accounting window for a user.
//
// EndDate is NULL while the period is open. At most one period per user is
// active with a NULL end date at any time ("the current period"); the store
// enforces this, the resolver only reads it.
type BudgetPeriod struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartDate string
	EndDate   *string // NULL means "currently open"
	IsActive  bool
}

// OwnedBy returns the identifier of the user who owns this period.
func (p BudgetPeriod) OwnedBy() uuid.UUID {
	return p.UserID
}
