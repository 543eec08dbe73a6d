package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"recallbot/internal/domain"
)

// pq error code for unique_violation
const uniqueViolation = "23505"

// CardRepo implements repository.CardRepository
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new flashcard repository
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

// Create inserts a flashcard with created_at = due = now.
// The UNIQUE (user_id, word_id) constraint turns a concurrent
// allocation on the same word into ErrAllocationConflict.
func (r *CardRepo) Create(userID, wordID int64, now time.Time) (*domain.Flashcard, error) {
	card := &domain.Flashcard{
		UserID:    userID,
		WordID:    wordID,
		CreatedAt: now,
		Due:       now,
	}

	query := `
		INSERT INTO flashcards (user_id, word_id, created_at, due)
		VALUES ($1, $2, $3, $3)
		RETURNING id
	`
	err := r.db.QueryRow(query, userID, wordID, now).Scan(&card.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrAllocationConflict
		}
		return nil, err
	}

	return card, nil
}

// GetByID returns the card constrained to its owner, or nil if absent.
// Ownership is part of the lookup so other users' cards stay invisible.
func (r *CardRepo) GetByID(userID, cardID int64) (*domain.Flashcard, error) {
	var f domain.Flashcard
	query := `
		SELECT f.id, f.user_id, f.word_id, w.word, w.definition, f.created_at, f.due
		FROM flashcards f
		JOIN saved_words w ON w.id = f.word_id
		WHERE f.user_id = $1 AND f.id = $2
	`
	err := r.db.QueryRow(query, userID, cardID).Scan(
		&f.ID, &f.UserID, &f.WordID, &f.Word, &f.Definition, &f.CreatedAt, &f.Due,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// GetDue returns the user's cards with due <= before, earliest-due
// first, ties broken by insertion order.
func (r *CardRepo) GetDue(userID int64, before time.Time, limit int) ([]domain.Flashcard, error) {
	query := `
		SELECT f.id, f.user_id, f.word_id, w.word, w.definition, f.created_at, f.due
		FROM flashcards f
		JOIN saved_words w ON w.id = f.word_id
		WHERE f.user_id = $1 AND f.due <= $2
		ORDER BY f.due ASC, f.id ASC
		LIMIT $3
	`

	rows, err := r.db.Query(query, userID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Flashcard
	for rows.Next() {
		var f domain.Flashcard
		if err := rows.Scan(&f.ID, &f.UserID, &f.WordID, &f.Word, &f.Definition, &f.CreatedAt, &f.Due); err != nil {
			return nil, err
		}
		cards = append(cards, f)
	}

	return cards, rows.Err()
}

// UpdateDue sets the card's next due timestamp
func (r *CardRepo) UpdateDue(cardID int64, due time.Time) error {
	query := `
		UPDATE flashcards
		SET due = $2
		WHERE id = $1
	`
	_, err := r.db.Exec(query, cardID, due)
	return err
}

// CountCreatedBetween counts the user's cards created in [from, to)
func (r *CardRepo) CountCreatedBetween(userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM flashcards
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var count int
	err := r.db.QueryRow(query, userID, from, to).Scan(&count)
	return count, err
}

// CountDue counts the user's cards with due <= before
func (r *CardRepo) CountDue(userID int64, before time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM flashcards
		WHERE user_id = $1 AND due <= $2
	`

	var count int
	err := r.db.QueryRow(query, userID, before).Scan(&count)
	return count, err
}

// CountByUser returns the user's total card count
func (r *CardRepo) CountByUser(userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM flashcards WHERE user_id = $1`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}
