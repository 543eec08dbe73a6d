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

const day = 24 * time.Hour

// SchedulerService records a learner's answer and computes the card's
// next due timestamp from the recency-weighted score over its trailing
// review history.
type SchedulerService struct {
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	cfg        config.StudyConfig
	logger     *zap.Logger
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	cardRepo repository.CardRepository,
	reviewRepo repository.ReviewRepository,
	cfg config.StudyConfig,
	logger *zap.Logger,
) *SchedulerService {
	return &SchedulerService{
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// AnswerItem is one (card, answer) pair of a submission.
type AnswerItem struct {
	CardID int64
	Answer domain.Answer
}

// SubmitResult is the per-item outcome of a batch submission: either
// the created review or the item's own error.
type SubmitResult struct {
	Review *domain.Review
	Err    error
}

// RecordAnswer validates the answer, reschedules the card, and appends
// the review record. Returns the created review.
func (s *SchedulerService) RecordAnswer(userID, cardID int64, answer domain.Answer, now time.Time) (*domain.Review, error) {
	if !answer.Valid() {
		return nil, domain.ErrInvalidAnswer
	}

	card, err := s.cardRepo.GetByID(userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	if card == nil {
		return nil, domain.ErrCardNotFound
	}

	counts, err := s.reviewRepo.CountAnswersBetween(cardID, now.Add(-s.cfg.HistoryWindow()), now)
	if err != nil {
		return nil, fmt.Errorf("count recent answers: %w", err)
	}

	due := nextDue(answer, counts.Score(), now)

	if err := s.cardRepo.UpdateDue(cardID, due); err != nil {
		return nil, fmt.Errorf("update due date: %w", err)
	}

	review, err := s.reviewRepo.Create(cardID, answer, now)
	if err != nil {
		// The due date moved but the review append failed; the caller
		// sees the failure for this item.
		return nil, fmt.Errorf("append review: %w", err)
	}

	s.logger.Info("Answer recorded",
		zap.Int64("user_id", userID),
		zap.Int64("card_id", cardID),
		zap.String("answer", string(answer)),
		zap.Time("due", due),
	)

	return review, nil
}

// SubmitAnswers processes the items strictly in submission order. Each
// item fully completes before the next begins, so a later item for the
// same card sees the reviews appended by earlier items in the same
// submission. A bad card id or answer fails only its own item; storage
// failures stop the batch.
func (s *SchedulerService) SubmitAnswers(userID int64, items []AnswerItem, now time.Time) ([]SubmitResult, error) {
	results := make([]SubmitResult, 0, len(items))

	for _, item := range items {
		review, err := s.RecordAnswer(userID, item.CardID, item.Answer, now)
		if err != nil {
			if errors.Is(err, domain.ErrCardNotFound) || errors.Is(err, domain.ErrInvalidAnswer) {
				results = append(results, SubmitResult{Err: err})
				continue
			}
			return results, err
		}
		results = append(results, SubmitResult{Review: review})
	}

	return results, nil
}

// nextDue converts the recency score into the card's next due
// timestamp. A non-negative score extends the interval beyond the
// answer's base (3 days for EASY, 1 day for HARD); FORGOT keeps its
// plain 1-day retry. A negative score collapses the interval to
// immediate re-study whatever the new answer was.
func nextDue(answer domain.Answer, score float64, now time.Time) time.Time {
	duration := time.Duration(score * float64(day))
	if duration < 0 {
		return now
	}

	switch answer {
	case domain.AnswerEasy:
		return now.Add(3*day + duration)
	case domain.AnswerHard:
		return now.Add(day + duration)
	default: // FORGOT: the score does not stretch the retry
		return now.Add(day)
	}
}
