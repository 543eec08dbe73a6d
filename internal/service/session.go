package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"recallbot/internal/config"
	"recallbot/internal/domain"
	"recallbot/internal/repository"
)

// SessionService builds today's study session: it first lets the
// allocator create new cards, then picks the due cards to present,
// capped by the daily session quota net of reviews already recorded
// today.
type SessionService struct {
	allocator  *AllocatorService
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	cfg        config.StudyConfig
	logger     *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	allocator *AllocatorService,
	cardRepo repository.CardRepository,
	reviewRepo repository.ReviewRepository,
	cfg config.StudyConfig,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		allocator:  allocator,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// FetchSession runs allocation for its side effect, then returns the
// cards to study, earliest-due first. The same instant is used for the
// allocation day, the review-count day, and the due horizon.
func (s *SessionService) FetchSession(userID int64, now time.Time) ([]domain.Flashcard, error) {
	if err := s.allocator.Allocate(userID, now); err != nil {
		return nil, fmt.Errorf("allocate new cards: %w", err)
	}
	return s.SelectDue(userID, now)
}

// SelectDue picks at most budget due cards without side effects.
// Cards due anywhere within the look-ahead horizon count as due today.
func (s *SessionService) SelectDue(userID int64, now time.Time) ([]domain.Flashcard, error) {
	dayStart, dayEnd := domain.DayBounds(now)

	reviewedToday, err := s.reviewRepo.CountReviewedBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count reviews today: %w", err)
	}

	if reviewedToday >= s.cfg.SessionQuota {
		s.logger.Info("Session quota already spent",
			zap.Int64("user_id", userID),
			zap.Int("reviewed_today", reviewedToday),
		)
		return []domain.Flashcard{}, nil
	}

	budget := s.cfg.SessionQuota - reviewedToday
	horizon := now.Add(s.cfg.DueLookahead())

	cards, err := s.cardRepo.GetDue(userID, horizon, budget)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}

	return cards, nil
}
