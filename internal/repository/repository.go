package repository

import (
	"time"

	"recallbot/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	GetAuthorizedUsers() ([]int64, error)
}

// WordRepository defines saved-word data operations
type WordRepository interface {
	SaveWord(userID int64, word, definition string) error
	// GetUncarded returns saved words that no flashcard references yet,
	// system-wide, in stored order, up to limit.
	GetUncarded(limit int) ([]domain.SavedWord, error)
	CountByUser(userID int64) (int, error)
}

// CardRepository defines flashcard data operations
type CardRepository interface {
	// Create inserts a flashcard with created_at = due = now. A unique
	// violation on (user_id, word_id) surfaces as ErrAllocationConflict.
	Create(userID, wordID int64, now time.Time) (*domain.Flashcard, error)
	// GetByID looks a card up constrained to its owner; (nil, nil) when absent.
	GetByID(userID, cardID int64) (*domain.Flashcard, error)
	// GetDue returns the user's cards with due <= before, ordered by due
	// then id, up to limit.
	GetDue(userID int64, before time.Time, limit int) ([]domain.Flashcard, error)
	UpdateDue(cardID int64, due time.Time) error
	CountCreatedBetween(userID int64, from, to time.Time) (int, error)
	CountDue(userID int64, before time.Time) (int, error)
	CountByUser(userID int64) (int, error)
}

// ReviewRepository defines review data operations
type ReviewRepository interface {
	Create(cardID int64, answer domain.Answer, now time.Time) (*domain.Review, error)
	// CountReviewedBetween counts reviews in [from, to) across all of the
	// user's cards.
	CountReviewedBetween(userID int64, from, to time.Time) (int, error)
	// CountAnswersBetween tallies one card's reviews in [from, to] per
	// answer kind. The inclusive upper bound makes reviews created at
	// exactly `to` visible, so answers persisted earlier in the same
	// submission count toward later lookups at the same instant.
	CountAnswersBetween(cardID int64, from, to time.Time) (domain.AnswerCounts, error)
}
