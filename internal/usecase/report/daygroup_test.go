package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

func TestGroupByDay(t *testing.T) {
	owner := uuid.New()

	// Newest-first, the way the ledger hands collections out.
	txs := []domain.Transaction{
		tx(owner, domain.TransactionTypeExpense, "dining", "2024-06-12", 30),
		tx(owner, domain.TransactionTypeExpense, "groceries", "2024-06-12", 20),
		tx(owner, domain.TransactionTypeIncome, "salary", "2024-06-10", 100),
		tx(owner, domain.TransactionTypeExpense, "rent", "2024-06-01", 600),
	}

	groups := GroupByDay(txs)

	require.Len(t, groups, 3)

	assert.Equal(t, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC), groups[0].Date)
	assert.Len(t, groups[0].Transactions, 2)
	assert.True(t, groups[0].Total.Equal(decimal.NewFromInt(50)))

	assert.True(t, groups[1].Total.Equal(decimal.NewFromInt(-100)))
	assert.True(t, groups[2].Total.Equal(decimal.NewFromInt(600)))

	// Running accumulates oldest-first: 600, then 600-100, then 500+50.
	assert.True(t, groups[2].Running.Equal(decimal.NewFromInt(600)))
	assert.True(t, groups[1].Running.Equal(decimal.NewFromInt(500)))
	assert.True(t, groups[0].Running.Equal(decimal.NewFromInt(550)))
}

func TestGroupByDay_UnparseableDatesTrail(t *testing.T) {
	owner := uuid.New()

	txs := []domain.Transaction{
		tx(owner, domain.TransactionTypeExpense, "groceries", "2024-06-12", 20),
		tx(owner, domain.TransactionTypeExpense, "misc", "garbage", 5),
		tx(owner, domain.TransactionTypeExpense, "misc", "also-garbage", 7),
	}

	groups := GroupByDay(txs)

	require.Len(t, groups, 2)
	assert.True(t, groups[1].Date.IsZero())
	assert.Len(t, groups[1].Transactions, 2)
	assert.True(t, groups[1].Total.Equal(decimal.NewFromInt(12)))
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}
