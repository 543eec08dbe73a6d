package service

import (
	"fmt"
	"time"

	"recallbot/internal/domain"
	"recallbot/internal/repository"
)

// StatsService assembles the per-user study snapshot for the bot's
// stats view.
type StatsService struct {
	wordRepo   repository.WordRepository
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	wordRepo repository.WordRepository,
	cardRepo repository.CardRepository,
	reviewRepo repository.ReviewRepository,
) *StatsService {
	return &StatsService{
		wordRepo:   wordRepo,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
	}
}

// GetStudyStats returns word, card, due, and today's activity counts
// for the user, all evaluated at the same instant.
func (s *StatsService) GetStudyStats(userID int64, now time.Time) (*domain.StudyStats, error) {
	dayStart, dayEnd := domain.DayBounds(now)

	totalWords, err := s.wordRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}

	totalCards, err := s.cardRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}

	dueNow, err := s.cardRepo.CountDue(userID, now)
	if err != nil {
		return nil, fmt.Errorf("count due cards: %w", err)
	}

	createdToday, err := s.cardRepo.CountCreatedBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count cards created today: %w", err)
	}

	reviewedToday, err := s.reviewRepo.CountReviewedBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count reviews today: %w", err)
	}

	return &domain.StudyStats{
		TotalWords:    totalWords,
		TotalCards:    totalCards,
		DueNow:        dueNow,
		CreatedToday:  createdToday,
		ReviewedToday: reviewedToday,
	}, nil
}
