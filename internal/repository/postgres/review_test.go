package postgres

import (
	"testing"
	"time"

	"recallbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestReviewRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepo(db)

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(42), "E", testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	review, err := repo.Create(42, domain.AnswerEasy, testNow)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), review.ID)
	assert.Equal(t, int64(42), review.CardID)
	assert.Equal(t, domain.AnswerEasy, review.Answer)
	assert.True(t, review.CreatedAt.Equal(testNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_CountReviewedBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepo(db)

	from := testNow.Add(-12 * time.Hour)
	to := testNow.Add(12 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reviews rv JOIN flashcards f").
		WithArgs(int64(123), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountReviewedBetween(123, from, to)

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_CountAnswersBetween(t *testing.T) {
	tests := []struct {
		name     string
		mockRows *sqlmock.Rows
		expected domain.AnswerCounts
	}{
		{
			name: "all three kinds",
			mockRows: sqlmock.NewRows([]string{"answer", "count"}).
				AddRow("E", 3).
				AddRow("H", 2).
				AddRow("F", 1),
			expected: domain.AnswerCounts{Easy: 3, Hard: 2, Forgot: 1},
		},
		{
			name: "only forgot",
			mockRows: sqlmock.NewRows([]string{"answer", "count"}).
				AddRow("F", 4),
			expected: domain.AnswerCounts{Forgot: 4},
		},
		{
			name:     "no reviews in window",
			mockRows: sqlmock.NewRows([]string{"answer", "count"}),
			expected: domain.AnswerCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewReviewRepo(db)

			from := testNow.Add(-30 * 24 * time.Hour)

			mock.ExpectQuery("SELECT answer, COUNT\\(\\*\\) FROM reviews").
				WithArgs(int64(42), from, testNow).
				WillReturnRows(tt.mockRows)

			counts, err := repo.CountAnswersBetween(42, from, testNow)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, counts)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
