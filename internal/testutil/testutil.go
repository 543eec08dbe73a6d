package testutil

import (
	"time"

	"recallbot/internal/config"
	"recallbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test saved word
func NewTestWord(id, userID int64, word, definition string) domain.SavedWord {
	return domain.SavedWord{
		ID:         id,
		UserID:     userID,
		Word:       word,
		Definition: definition,
		CreatedAt:  time.Now(),
	}
}

// NewTestCard creates a test flashcard due at the given time
func NewTestCard(id, userID, wordID int64, due time.Time) domain.Flashcard {
	return domain.Flashcard{
		ID:         id,
		UserID:     userID,
		WordID:     wordID,
		Word:       "hello",
		Definition: "greeting",
		CreatedAt:  due.Add(-time.Hour),
		Due:        due,
	}
}

// NewTestReview creates a test review
func NewTestReview(id, cardID int64, answer domain.Answer, createdAt time.Time) *domain.Review {
	return &domain.Review{
		ID:        id,
		CardID:    cardID,
		Answer:    answer,
		CreatedAt: createdAt,
	}
}

// DefaultStudyConfig mirrors the production policy knobs
func DefaultStudyConfig() config.StudyConfig {
	return config.StudyConfig{
		NewCardQuota:      10,
		SessionQuota:      15,
		HistoryWindowDays: 30,
		DueLookaheadHours: 24,
	}
}
