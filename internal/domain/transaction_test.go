package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	accountID := uuid.New()
	otherAccountID := uuid.New()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid expense should pass",
			tx: Transaction{
				ID:        uuid.New(),
				Amount:    decimal.NewFromInt(100),
				Type:      TransactionTypeExpense,
				Category:  "groceries",
				Date:      "2024-06-05",
				UserID:    uuid.New(),
				AccountID: accountID,
			},
			wantErr: false,
		},
		{
			name: "Valid income should pass",
			tx: Transaction{
				ID:        uuid.New(),
				Amount:    decimal.NewFromInt(20),
				Type:      TransactionTypeIncome,
				Category:  "salary",
				Date:      "2024-06-10",
				UserID:    uuid.New(),
				AccountID: accountID,
			},
			wantErr: false,
		},
		{
			name: "Valid transfer with distinct destination should pass",
			tx: Transaction{
				ID:          uuid.New(),
				Amount:      decimal.NewFromInt(50),
				Type:        TransactionTypeTransfer,
				Date:        "2024-06-12",
				UserID:      uuid.New(),
				AccountID:   accountID,
				ToAccountID: &otherAccountID,
			},
			wantErr: false,
		},
		{
			name: "Transfer without destination should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Amount:    decimal.NewFromInt(50),
				Type:      TransactionTypeTransfer,
				Date:      "2024-06-12",
				UserID:    uuid.New(),
				AccountID: accountID,
			},
			wantErr: true,
			errMsg:  "transfer transaction must have a destination account",
		},
		{
			name: "Transfer to same account should fail",
			tx: Transaction{
				ID:          uuid.New(),
				Amount:      decimal.NewFromInt(50),
				Type:        TransactionTypeTransfer,
				Date:        "2024-06-12",
				UserID:      uuid.New(),
				AccountID:   accountID,
				ToAccountID: &accountID,
			},
			wantErr: true,
			errMsg:  "transfer destination account must differ from source account",
		},
		{
			name: "Expense with destination account should fail",
			tx: Transaction{
				ID:          uuid.New(),
				Amount:      decimal.NewFromInt(50),
				Type:        TransactionTypeExpense,
				Date:        "2024-06-12",
				UserID:      uuid.New(),
				AccountID:   accountID,
				ToAccountID: &otherAccountID,
			},
			wantErr: true,
			errMsg:  "only transfer transactions may set a destination account",
		},
		{
			name: "Negative amount should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Amount:    decimal.NewFromInt(-10),
				Type:      TransactionTypeExpense,
				Date:      "2024-06-12",
				UserID:    uuid.New(),
				AccountID: accountID,
			},
			wantErr: true,
			errMsg:  "transaction amount must not be negative",
		},
		{
			name: "Unknown type should fail",
			tx: Transaction{
				ID:        uuid.New(),
				Amount:    decimal.NewFromInt(10),
				Type:      TransactionType("withdrawal"),
				Date:      "2024-06-12",
				UserID:    uuid.New(),
				AccountID: accountID,
			},
			wantErr: true,
			errMsg:  "transaction type must be income, expense or transfer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_OwnedBy(t *testing.T) {
	userID := uuid.New()
	tx := Transaction{ID: uuid.New(), UserID: userID}
	assert.Equal(t, userID, tx.OwnedBy())
}
