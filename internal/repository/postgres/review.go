package postgres

import (
	"database/sql"
	"time"

	"recallbot/internal/domain"
)

// ReviewRepo implements repository.ReviewRepository
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create appends an immutable review record for the card
func (r *ReviewRepo) Create(cardID int64, answer domain.Answer, now time.Time) (*domain.Review, error) {
	review := &domain.Review{
		CardID:    cardID,
		Answer:    answer,
		CreatedAt: now,
	}

	query := `
		INSERT INTO reviews (card_id, answer, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(query, cardID, string(answer), now).Scan(&review.ID)
	if err != nil {
		return nil, err
	}

	return review, nil
}

// CountReviewedBetween counts reviews in [from, to) across all of the
// user's cards
func (r *ReviewRepo) CountReviewedBetween(userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reviews rv
		JOIN flashcards f ON f.id = rv.card_id
		WHERE f.user_id = $1 AND rv.created_at >= $2 AND rv.created_at < $3
	`

	var count int
	err := r.db.QueryRow(query, userID, from, to).Scan(&count)
	return count, err
}

// CountAnswersBetween tallies one card's reviews in [from, to] per
// answer kind. The upper bound is inclusive so that reviews persisted
// at exactly the evaluation instant, as earlier answers of the same
// submission are, count toward later lookups.
func (r *ReviewRepo) CountAnswersBetween(cardID int64, from, to time.Time) (domain.AnswerCounts, error) {
	query := `
		SELECT answer, COUNT(*)
		FROM reviews
		WHERE card_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY answer
	`

	var counts domain.AnswerCounts

	rows, err := r.db.Query(query, cardID, from, to)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var answer string
		var n int
		if err := rows.Scan(&answer, &n); err != nil {
			return counts, err
		}
		switch domain.Answer(answer) {
		case domain.AnswerEasy:
			counts.Easy = n
		case domain.AnswerHard:
			counts.Hard = n
		case domain.AnswerForgot:
			counts.Forgot = n
		}
	}

	return counts, rows.Err()
}
