package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Account represents a money account shared by one or more users of the
// same household group.
type Account struct {
	ID      uuid.UUID
	Name    string
	UserIDs []uuid.UUID // users allowed to transact against this account
	GroupID uuid.UUID
}

// SharedWith reports whether the given user may transact against this account.
func (a *Account) SharedWith(userID uuid.UUID) bool {
	for _, id := range a.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate ensures the account adheres to domain rules.
// Returns an error if validation fails.
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}

	if len(a.UserIDs) == 0 {
		return errors.New("account must have at least one user")
	}

	return nil
}
