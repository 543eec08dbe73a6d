package testutil

import (
	"time"

	"recallbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetAuthorizedUsers() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) SaveWord(userID int64, word, definition string) error {
	args := m.Called(userID, word, definition)
	return args.Error(0)
}

func (m *MockWordRepository) GetUncarded(limit int) ([]domain.SavedWord, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedWord), args.Error(1)
}

func (m *MockWordRepository) CountByUser(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockCardRepository is a mock for CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(userID, wordID int64, now time.Time) (*domain.Flashcard, error) {
	args := m.Called(userID, wordID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetByID(userID, cardID int64) (*domain.Flashcard, error) {
	args := m.Called(userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetDue(userID int64, before time.Time, limit int) ([]domain.Flashcard, error) {
	args := m.Called(userID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) UpdateDue(cardID int64, due time.Time) error {
	args := m.Called(cardID, due)
	return args.Error(0)
}

func (m *MockCardRepository) CountCreatedBetween(userID int64, from, to time.Time) (int, error) {
	args := m.Called(userID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) CountDue(userID int64, before time.Time) (int, error) {
	args := m.Called(userID, before)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) CountByUser(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockReviewRepository is a mock for ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(cardID int64, answer domain.Answer, now time.Time) (*domain.Review, error) {
	args := m.Called(cardID, answer, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) CountReviewedBetween(userID int64, from, to time.Time) (int, error) {
	args := m.Called(userID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) CountAnswersBetween(cardID int64, from, to time.Time) (domain.AnswerCounts, error) {
	args := m.Called(cardID, from, to)
	return args.Get(0).(domain.AnswerCounts), args.Error(1)
}
