// Package scope narrows user-owned collections to what a given actor may
// see or act on. It is the single gate in front of every aggregation and
// mutation path; the report package assumes its inputs already passed here.
package scope

import (
	"github.com/google/uuid"

	"github.com/homeledger/homeledger-backend/internal/domain"
)

// Owned is any record attributable to a single owning user.
type Owned interface {
	OwnedBy() uuid.UUID
}

// Narrow returns the subset of items visible to the actor.
//
// A member always gets their own items, whatever selected says: a member
// can never broaden scope through a parameter, and supplying someone else's
// id silently narrows instead of erroring. Admins and superadmins get
// everything when selected is nil (the "all" sentinel) and the selected
// owner's items otherwise. The input slice is never mutated.
func Narrow[T Owned](items []T, actor domain.User, selected *uuid.UUID) []T {
	if !actor.Role.CanViewAll() {
		return ownedBy(items, actor.ID)
	}

	if selected == nil {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	return ownedBy(items, *selected)
}

func ownedBy[T Owned](items []T, owner uuid.UUID) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.OwnedBy() == owner {
			out = append(out, item)
		}
	}
	return out
}
