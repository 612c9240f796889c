package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a single ledger record in the domain layer.
// It is immutable-by-replacement: edits replace the whole record, there
// are no partial field patches at this layer.
//
// Date is kept as the raw string supplied by the store. Historic records
// carry heterogeneous date formats, so parsing happens at the point of
// use (see timeutil.ParseDate) and a record with an unparseable date is
// still a valid record.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // ABSOLUTE VALUE (Always Positive)
	Type        TransactionType
	Category    string
	Date        string
	UserID      uuid.UUID
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID // NULL unless Type is transfer
	GroupID     uuid.UUID
}

// OwnedBy returns the identifier of the user who owns this transaction.
func (t Transaction) OwnedBy() uuid.UUID {
	return t.UserID
}

// Validate ensures the transaction adheres to domain rules.
// Returns an error if validation fails.
// CRITICAL: a transfer always carries a destination account distinct from
// its source account; income/expense rows never carry a destination.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return errors.New("transaction amount must not be negative")
	}

	switch t.Type {
	case TransactionTypeIncome, TransactionTypeExpense:
		if t.ToAccountID != nil {
			return errors.New("only transfer transactions may set a destination account")
		}
	case TransactionTypeTransfer:
		if t.ToAccountID == nil {
			return errors.New("transfer transaction must have a destination account")
		}
		if *t.ToAccountID == t.AccountID {
			return errors.New("transfer destination account must differ from source account")
		}
	default:
		return errors.New("transaction type must be income, expense or transfer")
	}

	return nil
}
