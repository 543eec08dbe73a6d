package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle              UserState = "idle"
	StateWaitingWord       UserState = "waiting_word"
	StateWaitingDefinition UserState = "waiting_definition"
	StateStudying          UserState = "studying"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string

	// Study session queue, held in memory between answer callbacks
	Queue    []Flashcard
	Position int
}

// CurrentCard returns the card the user is looking at, or nil when the
// queue is exhausted.
func (d *StateData) CurrentCard() *Flashcard {
	if d.Position < 0 || d.Position >= len(d.Queue) {
		return nil
	}
	return &d.Queue[d.Position]
}
