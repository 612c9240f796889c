// Package ledger maintains an ordered in-memory view of a transaction
// collection. The collection is kept strictly descending by date; every
// operation returns a new slice and leaves its input untouched, so callers
// can apply results optimistically and roll back by keeping the old slice.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/homeledger-backend/internal/domain"
	"github.com/homeledger/homeledger-backend/internal/timeutil"
)

// dateKey returns the sort key for a transaction. Records whose date fails
// to parse compare as older than everything (the zero time), so a corrupt
// record in the middle of a collection cannot break the binary search.
func dateKey(tx domain.Transaction) time.Time {
	t, err := timeutil.ParseDate(tx.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// insertIndex finds the left-most index whose element's date is not greater
// than key, i.e. the position where tx must be spliced to keep the
// collection descending. New entries therefore land before existing entries
// with an equal date.
func insertIndex(txs []domain.Transaction, key time.Time) int {
	return sort.Search(len(txs), func(i int) bool {
		return !dateKey(txs[i]).After(key)
	})
}

// Insert splices tx into a date-descending collection, preserving the order
// invariant without re-sorting.
//
// A transaction whose date fails to parse is appended at the end instead of
// being dropped; the returned warning (nil on clean input) reports the data
// quality problem so the caller can log it. Losing a financial record
// silently is worse than having it briefly out of strict order.
func Insert(txs []domain.Transaction, tx domain.Transaction) ([]domain.Transaction, error) {
	if _, err := timeutil.ParseDate(tx.Date); err != nil {
		out := make([]domain.Transaction, 0, len(txs)+1)
		out = append(out, txs...)
		out = append(out, tx)
		return out, fmt.Errorf("transaction %s: %w", tx.ID, err)
	}

	idx := insertIndex(txs, dateKey(tx))

	out := make([]domain.Transaction, 0, len(txs)+1)
	out = append(out, txs[:idx]...)
	out = append(out, tx)
	out = append(out, txs[idx:]...)
	return out, nil
}

// Update replaces the entry with tx's identifier by removing it and
// re-inserting the new value. If the date changed, the entry naturally
// re-homes to its new position. The warning semantics match Insert.
func Update(txs []domain.Transaction, tx domain.Transaction) ([]domain.Transaction, error) {
	return Insert(Remove(txs, tx.ID), tx)
}

// Remove filters out the entry with the given identifier. Removing an
// absent identifier is a no-op and returns an equivalent collection.
func Remove(txs []domain.Transaction, id uuid.UUID) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID == id {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Find returns the entry with the given identifier, or nil when absent.
func Find(txs []domain.Transaction, id uuid.UUID) *domain.Transaction {
	for i := range txs {
		if txs[i].ID == id {
			return &txs[i]
		}
	}
	return nil
}

// Rebuild produces a date-descending view from an arbitrarily ordered
// collection by inserting every record into an empty one. Records with
// unparseable dates end up at the tail.
func Rebuild(txs []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		out, _ = Insert(out, tx)
	}
	return out
}
