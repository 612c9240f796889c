package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, description, amount, type, category, date, user_id, account_id, to_account_id, group_id`

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var amountStr string
	var txType string
	var toAccountID sql.NullString

	err := row.Scan(
		&tx.ID,
		&tx.Description,
		&amountStr,
		&txType,
		&tx.Category,
		&tx.Date,
		&tx.UserID,
		&tx.AccountID,
		&toAccountID,
		&tx.GroupID,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	tx.Amount = amount
	tx.Type = domain.TransactionType(txType)

	if toAccountID.Valid {
		toUUID, err := uuid.Parse(toAccountID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse to_account_id: %w", err)
		}
		tx.ToAccountID = &toUUID
	}

	return &tx, nil
}

// GetByID retrieves a transaction by its ID
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

func (r *transactionRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// ListByUser retrieves all transactions owned by a user, newest first.
// Rows whose date column holds an unparseable value sort last; the ledger
// maintainer applies the same rule in memory.
func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, userID)
}

// ListByGroup retrieves all transactions in a household group, newest first
func (r *transactionRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE group_id = $1 ORDER BY date DESC`
	return r.list(ctx, query, groupID)
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, description, amount, type, category, date, user_id, account_id, to_account_id, group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var toAccountID interface{}
	if tx.ToAccountID != nil {
		toAccountID = tx.ToAccountID
	}

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount.String(),
		string(tx.Type),
		tx.Category,
		tx.Date,
		tx.UserID,
		tx.AccountID,
		toAccountID,
		tx.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// Update replaces an existing transaction
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $2, amount = $3, type = $4, category = $5, date = $6, user_id = $7, account_id = $8, to_account_id = $9, group_id = $10
		WHERE id = $1
	`

	var toAccountID interface{}
	if tx.ToAccountID != nil {
		toAccountID = tx.ToAccountID
	}

	result, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount.String(),
		string(tx.Type),
		tx.Category,
		tx.Date,
		tx.UserID,
		tx.AccountID,
		toAccountID,
		tx.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction not found: %s", tx.ID)
	}

	return nil
}

// Delete removes a transaction by its ID
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
