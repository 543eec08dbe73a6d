package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"recallbot/internal/repository"
)

// DueReminder is one user's pending-card notification payload.
type DueReminder struct {
	UserID   int64
	DueCount int
}

// ReminderService finds users who have cards due for the daily
// reminder job.
type ReminderService struct {
	userRepo repository.UserRepository
	cardRepo repository.CardRepository
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	userRepo repository.UserRepository,
	cardRepo repository.CardRepository,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		userRepo: userRepo,
		cardRepo: cardRepo,
		logger:   logger,
	}
}

// DueReminders returns, for every authorized user with at least one
// card due at now, the user and their due count.
func (s *ReminderService) DueReminders(now time.Time) ([]DueReminder, error) {
	userIDs, err := s.userRepo.GetAuthorizedUsers()
	if err != nil {
		return nil, fmt.Errorf("get authorized users: %w", err)
	}

	var reminders []DueReminder
	for _, id := range userIDs {
		count, err := s.cardRepo.CountDue(id, now)
		if err != nil {
			// per-user failure does not abort the sweep
			s.logger.Error("Failed to count due cards for reminder",
				zap.Int64("user_id", id),
				zap.Error(err),
			)
			continue
		}
		if count > 0 {
			reminders = append(reminders, DueReminder{UserID: id, DueCount: count})
		}
	}

	return reminders, nil
}
