package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var userIDs pq.StringArray

	err := row.Scan(
		&account.ID,
		&account.Name,
		&userIDs,
		&account.GroupID,
	)
	if err != nil {
		return nil, err
	}

	account.UserIDs = make([]uuid.UUID, 0, len(userIDs))
	for _, raw := range userIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account user id: %w", err)
		}
		account.UserIDs = append(account.UserIDs, id)
	}

	return &account, nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, name, user_ids, group_id
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return account, nil
}

// ListByGroup retrieves all accounts in a household group
func (r *accountRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Account, error) {
	query := `
		SELECT id, name, user_ids, group_id
		FROM accounts
		WHERE group_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, user_ids, group_id)
		VALUES ($1, $2, $3, $4)
	`

	userIDs := make(pq.StringArray, 0, len(account.UserIDs))
	for _, id := range account.UserIDs {
		userIDs = append(userIDs, id.String())
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		userIDs,
		account.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}
