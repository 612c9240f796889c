package ledger

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
)

func makeTx(date string) domain.Transaction {
	return domain.Transaction{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(10),
		Type:      domain.TransactionTypeExpense,
		Category:  "misc",
		Date:      date,
		UserID:    uuid.New(),
		AccountID: uuid.New(),
	}
}

// assertDescending verifies the order invariant: dates are non-increasing,
// with unparseable dates treated as the minimum.
func assertDescending(t *testing.T, txs []domain.Transaction) {
	t.Helper()
	for i := 1; i < len(txs); i++ {
		prev := dateKey(txs[i-1])
		curr := dateKey(txs[i])
		assert.False(t, curr.After(prev),
			"order violated at index %d: %s before %s", i, txs[i-1].Date, txs[i].Date)
	}
}

func TestInsert_KeepsDescendingOrder(t *testing.T) {
	var txs []domain.Transaction
	var err error

	for _, date := range []string{"2024-06-10", "2024-06-01", "2024-06-20", "2024-06-10", "2024-05-31"} {
		txs, err = Insert(txs, makeTx(date))
		require.NoError(t, err)
		assertDescending(t, txs)
	}

	require.Len(t, txs, 5)
	assert.Equal(t, "2024-06-20", txs[0].Date)
	assert.Equal(t, "2024-05-31", txs[4].Date)
}

func TestInsert_EqualDatesGoFirst(t *testing.T) {
	first := makeTx("2024-06-10")
	second := makeTx("2024-06-10")

	txs, err := Insert(nil, first)
	require.NoError(t, err)
	txs, err = Insert(txs, second)
	require.NoError(t, err)

	// The newer entry lands before the existing equal-dated one.
	assert.Equal(t, second.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)
}

func TestInsert_UnparseableDateAppendsWithWarning(t *testing.T) {
	txs, err := Insert(nil, makeTx("2024-06-10"))
	require.NoError(t, err)
	txs, err = Insert(txs, makeTx("2024-06-01"))
	require.NoError(t, err)

	corrupt := makeTx("not-a-date")
	txs, err = Insert(txs, corrupt)

	// The record is kept despite the warning.
	assert.ErrorIs(t, err, timeutil.ErrUnparseableDate)
	require.Len(t, txs, 3)
	assert.Equal(t, corrupt.ID, txs[2].ID)
}

func TestInsert_CorruptDateMidCollectionDoesNotBreakSearch(t *testing.T) {
	// A corrupt date already in the middle compares as older than
	// everything; inserts must still terminate and place parseable
	// records correctly.
	txs := []domain.Transaction{
		makeTx("2024-06-20"),
		makeTx("garbage"),
		makeTx("2024-06-01"),
	}

	out, err := Insert(txs, makeTx("2024-06-10"))
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "2024-06-10", out[1].Date)
}

func TestInsert_DoesNotMutateInput(t *testing.T) {
	txs, err := Insert(nil, makeTx("2024-06-10"))
	require.NoError(t, err)

	before := make([]domain.Transaction, len(txs))
	copy(before, txs)

	_, err = Insert(txs, makeTx("2024-06-15"))
	require.NoError(t, err)
	assert.Equal(t, before, txs)
}

func TestUpdate_RehomesOnDateChange(t *testing.T) {
	oldest := makeTx("2024-06-01")
	middle := makeTx("2024-06-10")
	newest := makeTx("2024-06-20")

	var txs []domain.Transaction
	for _, tx := range []domain.Transaction{oldest, middle, newest} {
		var err error
		txs, err = Insert(txs, tx)
		require.NoError(t, err)
	}

	moved := oldest
	moved.Date = "2024-06-30"
	txs, err := Update(txs, moved)
	require.NoError(t, err)

	require.Len(t, txs, 3)
	assert.Equal(t, moved.ID, txs[0].ID)
	assertDescending(t, txs)
}

func TestUpdate_MatchesFromScratchSort(t *testing.T) {
	var txs []domain.Transaction
	for _, date := range []string{"2024-06-05", "2024-06-15", "2024-06-25"} {
		var err error
		txs, err = Insert(txs, makeTx(date))
		require.NoError(t, err)
	}

	moved := txs[2]
	moved.Date = "2024-06-20"
	updated, err := Update(txs, moved)
	require.NoError(t, err)

	assert.Equal(t, Rebuild(updated), updated)
}

func TestRemove_IsIdempotent(t *testing.T) {
	var txs []domain.Transaction
	for _, date := range []string{"2024-06-05", "2024-06-15"} {
		var err error
		txs, err = Insert(txs, makeTx(date))
		require.NoError(t, err)
	}

	out := Remove(txs, uuid.New())
	assert.Equal(t, txs, out)

	out = Remove(out, txs[0].ID)
	require.Len(t, out, 1)
	out = Remove(out, txs[0].ID)
	require.Len(t, out, 1)
}

func TestFind(t *testing.T) {
	tx := makeTx("2024-06-05")
	txs, err := Insert(nil, tx)
	require.NoError(t, err)

	found := Find(txs, tx.ID)
	require.NotNil(t, found)
	assert.Equal(t, tx.ID, found.ID)

	assert.Nil(t, Find(txs, uuid.New()))
}

func TestRandomOperations_PreserveInvariant(t *testing.T) {
	// Property check: any sequence of insert/update/remove over random
	// dates (including corrupt ones) keeps the collection non-increasing
	// by date.
	rng := rand.New(rand.NewSource(42))
	var txs []domain.Transaction

	randomDate := func() string {
		if rng.Intn(10) == 0 {
			return "corrupt-date"
		}
		return fmt.Sprintf("2024-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))
	}

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(txs) == 0:
			txs, _ = Insert(txs, makeTx(randomDate()))
		case op == 1:
			moved := txs[rng.Intn(len(txs))]
			moved.Date = randomDate()
			txs, _ = Update(txs, moved)
		default:
			txs = Remove(txs, txs[rng.Intn(len(txs))].ID)
		}

		assertDescendingParseable(t, txs)
	}
}

// assertDescendingParseable checks the invariant over the parseable prefix
// semantics: parseable dates never increase left to right once corrupt
// entries (which sort as minimum or sit appended at the tail) are skipped.
func assertDescendingParseable(t *testing.T, txs []domain.Transaction) {
	t.Helper()
	last := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	for _, tx := range txs {
		key, err := timeutil.ParseDate(tx.Date)
		if err != nil {
			continue
		}
		if key.After(last) {
			t.Fatalf("parseable dates out of order: %s after %s", tx.Date, last)
		}
		last = key
	}
}
