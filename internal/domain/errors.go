package domain

import "errors"

var (
	// ErrCardNotFound is returned when a submitted card id does not exist
	// or belongs to a different user. The caller cannot tell the two
	// cases apart.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidAnswer is returned for answer values outside E/H/F,
	// before any mutation happens for that item.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrAllocationConflict marks a flashcard creation that raced with a
	// concurrent allocation on the same (user, word). Non-fatal: the
	// allocator skips the word and continues.
	ErrAllocationConflict = errors.New("allocation conflict")
)
