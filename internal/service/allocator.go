package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recallbot/internal/config"
	"recallbot/internal/domain"
	"recallbot/internal/repository"
)

// AllocatorService tops up a user's active cards from the backlog of
// saved words that have no flashcard yet, respecting the daily
// new-card quota.
type AllocatorService struct {
	wordRepo repository.WordRepository
	cardRepo repository.CardRepository
	cfg      config.StudyConfig
	logger   *zap.Logger
}

// NewAllocatorService creates a new allocator service
func NewAllocatorService(
	wordRepo repository.WordRepository,
	cardRepo repository.CardRepository,
	cfg config.StudyConfig,
	logger *zap.Logger,
) *AllocatorService {
	return &AllocatorService{
		wordRepo: wordRepo,
		cardRepo: cardRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Allocate materializes up to quota-minus-already-created flashcards
// for the calendar day of now. Words carded concurrently by another
// request are skipped; allocation continues with the next candidate.
func (s *AllocatorService) Allocate(userID int64, now time.Time) error {
	dayStart, dayEnd := domain.DayBounds(now)

	createdToday, err := s.cardRepo.CountCreatedBetween(userID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("count cards created today: %w", err)
	}

	if createdToday >= s.cfg.NewCardQuota {
		return nil
	}

	slots := s.cfg.NewCardQuota - createdToday
	words, err := s.wordRepo.GetUncarded(slots)
	if err != nil {
		return fmt.Errorf("get uncarded words: %w", err)
	}

	created := 0
	for _, w := range words {
		if _, err := s.cardRepo.Create(userID, w.ID, now); err != nil {
			if errors.Is(err, domain.ErrAllocationConflict) {
				// Another allocation won the race on this word
				s.logger.Warn("Skipping concurrently carded word",
					zap.Int64("user_id", userID),
					zap.Int64("word_id", w.ID),
				)
				continue
			}
			return fmt.Errorf("create flashcard for word %d: %w", w.ID, err)
		}
		created++
	}

	if created > 0 {
		s.logger.Info("Allocated new flashcards",
			zap.Int64("user_id", userID),
			zap.Int("created", created),
		)
	}

	return nil
}
