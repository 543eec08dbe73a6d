package domain

import "time"

// SavedWord is a vocabulary entry a user has recorded.
// It is not necessarily under active study yet.
type SavedWord struct {
	ID         int64
	UserID     int64
	Word       string
	Definition string
	CreatedAt  time.Time
}
