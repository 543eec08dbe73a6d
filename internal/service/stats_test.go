package service

import (
	"fmt"
	"testing"

	"recallbot/internal/domain"
	"recallbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_GetStudyStats(t *testing.T) {
	userID := int64(123)
	dayStart, dayEnd := testDayBounds()

	mockWords := new(testutil.MockWordRepository)
	mockCards := new(testutil.MockCardRepository)
	mockReviews := new(testutil.MockReviewRepository)

	mockWords.On("CountByUser", userID).Return(40, nil)
	mockCards.On("CountByUser", userID).Return(25, nil)
	mockCards.On("CountDue", userID, testNow).Return(7, nil)
	mockCards.On("CountCreatedBetween", userID, dayStart, dayEnd).Return(10, nil)
	mockReviews.On("CountReviewedBetween", userID, dayStart, dayEnd).Return(3, nil)

	service := NewStatsService(mockWords, mockCards, mockReviews)

	stats, err := service.GetStudyStats(userID, testNow)

	assert.NoError(t, err)
	assert.Equal(t, &domain.StudyStats{
		TotalWords:    40,
		TotalCards:    25,
		DueNow:        7,
		CreatedToday:  10,
		ReviewedToday: 3,
	}, stats)
	mockWords.AssertExpectations(t)
	mockCards.AssertExpectations(t)
	mockReviews.AssertExpectations(t)
}

func TestStatsService_GetStudyStats_Error(t *testing.T) {
	userID := int64(123)

	mockWords := new(testutil.MockWordRepository)
	mockCards := new(testutil.MockCardRepository)
	mockReviews := new(testutil.MockReviewRepository)

	mockWords.On("CountByUser", userID).Return(0, fmt.Errorf("db error"))

	service := NewStatsService(mockWords, mockCards, mockReviews)

	stats, err := service.GetStudyStats(userID, testNow)

	assert.Error(t, err)
	assert.Nil(t, stats)
}
