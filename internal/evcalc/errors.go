package evcalc

import "errors"

var (
	// ErrNotEvRelevant means the item has no EV effect at all
	ErrNotEvRelevant = errors.New("item does not affect EVs")

	// ErrNotUseItem means the item affects EVs only as a held item
	// during battles, not through a direct use action
	ErrNotUseItem = errors.New("item affects EVs only when held during battles")

	// ErrInvalidQuantity means the requested quantity is below 1
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrCapViolation means a computed EV spread broke the per-stat or
	// total cap. The per-branch arithmetic should make this unreachable;
	// any occurrence is a logic bug and the mutation is rejected.
	ErrCapViolation = errors.New("resulting EVs violate stat caps")

	// ErrProjectionUnavailable means a stat projection was requested
	// without all six IVs or a resolvable nature
	ErrProjectionUnavailable = errors.New("stat projection requires all IVs and a resolvable nature")
)
