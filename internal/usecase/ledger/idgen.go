package ledger

import "github.com/google/uuid"

// IDGenerator mints identifiers for records created locally before the
// durable store confirms them. It is passed explicitly to call sites so
// there is no hidden cross-call state.
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDGenerator is the production IDGenerator, backed by random UUIDs.
type UUIDGenerator struct{}

// NewID returns a fresh random UUID.
func (UUIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}
