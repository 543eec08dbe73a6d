package postgres

import (
	"database/sql"

	"recallbot/internal/domain"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// SaveWord saves a word-definition pair
func (r *WordRepo) SaveWord(userID int64, word, definition string) error {
	query := `
		INSERT INTO saved_words (user_id, word, definition)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, userID, word, definition)
	return err
}

// GetUncarded returns saved words without a flashcard, in stored order.
// The backlog is system-wide: a word is free only if no flashcard
// anywhere references it.
func (r *WordRepo) GetUncarded(limit int) ([]domain.SavedWord, error) {
	query := `
		SELECT w.id, w.user_id, w.word, w.definition, w.created_at
		FROM saved_words w
		WHERE NOT EXISTS (
			SELECT 1 FROM flashcards f WHERE f.word_id = w.id
		)
		ORDER BY w.id
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.SavedWord
	for rows.Next() {
		var w domain.SavedWord
		if err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Definition, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// CountByUser returns the number of words the user has saved
func (r *WordRepo) CountByUser(userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM saved_words WHERE user_id = $1`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}
