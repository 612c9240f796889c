package ledger

import (
	"github.com/google/uuid"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// Command is an optimistic mutation over an ordered transaction collection.
// Apply produces the new collection immediately; Compensate restores the
// prior state deterministically when the durable write later fails. The
// prior state is captured explicitly at construction time, never through
// closures over ambient variables.
type Command interface {
	Apply(txs []domain.Transaction) []domain.Transaction
	Compensate(txs []domain.Transaction) []domain.Transaction
}

type insertCommand struct {
	tx domain.Transaction
}

// NewInsert returns a command that inserts tx and compensates by removing it.
func NewInsert(tx domain.Transaction) Command {
	return insertCommand{tx: tx}
}

func (c insertCommand) Apply(txs []domain.Transaction) []domain.Transaction {
	out, _ := Insert(txs, c.tx)
	return out
}

func (c insertCommand) Compensate(txs []domain.Transaction) []domain.Transaction {
	return Remove(txs, c.tx.ID)
}

type updateCommand struct {
	next domain.Transaction
	prev *domain.Transaction
}

// NewUpdate returns a command that replaces the entry sharing next's
// identifier. prev is the record as it existed before the update, or nil
// when the caller knows there was none.
func NewUpdate(next domain.Transaction, prev *domain.Transaction) Command {
	return updateCommand{next: next, prev: prev}
}

func (c updateCommand) Apply(txs []domain.Transaction) []domain.Transaction {
	out, _ := Update(txs, c.next)
	return out
}

func (c updateCommand) Compensate(txs []domain.Transaction) []domain.Transaction {
	if c.prev == nil {
		return Remove(txs, c.next.ID)
	}
	out, _ := Update(txs, *c.prev)
	return out
}

type removeCommand struct {
	id   uuid.UUID
	prev *domain.Transaction
}

// NewRemove returns a command that removes the entry with the given
// identifier. prev is the record being removed, used to restore it on
// compensation; nil makes compensation a no-op.
func NewRemove(id uuid.UUID, prev *domain.Transaction) Command {
	return removeCommand{id: id, prev: prev}
}

func (c removeCommand) Apply(txs []domain.Transaction) []domain.Transaction {
	return Remove(txs, c.id)
}

func (c removeCommand) Compensate(txs []domain.Transaction) []domain.Transaction {
	if c.prev == nil {
		return txs
	}
	out, _ := Insert(txs, *c.prev)
	return out
}
