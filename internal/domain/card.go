package domain

import "time"

// Flashcard binds a user to a saved word under active study and carries
// the next due date. At most one flashcard exists per (user, word) pair.
type Flashcard struct {
	ID         int64
	UserID     int64
	WordID     int64
	Word       string // denormalized from saved_words for display
	Definition string
	CreatedAt  time.Time
	Due        time.Time
}
