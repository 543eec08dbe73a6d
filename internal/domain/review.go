package domain

import "time"

// Answer is the learner's self-assessment of one flashcard showing.
// Stored as a single character, matching the reviews.answer column.
type Answer string

const (
	AnswerEasy   Answer = "E"
	AnswerHard   Answer = "H"
	AnswerForgot Answer = "F"
)

// Valid reports whether the answer is one of the three known values.
func (a Answer) Valid() bool {
	switch a {
	case AnswerEasy, AnswerHard, AnswerForgot:
		return true
	}
	return false
}

// Weight returns the answer's contribution to the recency score:
// EASY counts a full day, HARD half a day, FORGOT minus half a day.
func (a Answer) Weight() float64 {
	switch a {
	case AnswerEasy:
		return 1
	case AnswerHard:
		return 0.5
	case AnswerForgot:
		return -0.5
	}
	return 0
}

// Review is an immutable record of one answer event.
type Review struct {
	ID        int64
	CardID    int64
	Answer    Answer
	CreatedAt time.Time
}

// AnswerCounts holds per-answer totals over a card's review history window.
type AnswerCounts struct {
	Easy   int
	Hard   int
	Forgot int
}

// Score is the recency-weighted score used to modulate interval growth.
func (c AnswerCounts) Score() float64 {
	return float64(c.Easy)*AnswerEasy.Weight() +
		float64(c.Hard)*AnswerHard.Weight() +
		float64(c.Forgot)*AnswerForgot.Weight()
}
