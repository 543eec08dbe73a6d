package postgres

import (
	"fmt"
	"testing"
	"time"

	"recallbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestCardRepo_Create(t *testing.T) {
	tests := []struct {
		name             string
		mockError        error
		expectedConflict bool
		expectedError    bool
	}{
		{
			name:          "created",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:             "unique violation becomes allocation conflict",
			mockError:        &pq.Error{Code: "23505", Constraint: "unique_flashcard"},
			expectedConflict: true,
			expectedError:    true,
		},
		{
			name:          "other database error",
			mockError:     fmt.Errorf("connection reset"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewCardRepo(db)

			userID := int64(123)
			wordID := int64(7)

			expect := mock.ExpectQuery("INSERT INTO flashcards").
				WithArgs(userID, wordID, testNow)
			if tt.mockError != nil {
				expect.WillReturnError(tt.mockError)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			}

			card, err := repo.Create(userID, wordID, testNow)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, card)
				if tt.expectedConflict {
					assert.ErrorIs(t, err, domain.ErrAllocationConflict)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), card.ID)
				assert.Equal(t, userID, card.UserID)
				assert.Equal(t, wordID, card.WordID)
				assert.True(t, card.Due.Equal(testNow))
				assert.True(t, card.CreatedAt.Equal(testNow))
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCardRepo_GetByID(t *testing.T) {
	columns := []string{"id", "user_id", "word_id", "word", "definition", "created_at", "due"}

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		expectedNil   bool
		expectedError bool
	}{
		{
			name: "card found",
			mockRows: sqlmock.NewRows(columns).
				AddRow(42, 123, 7, "apple", "яблоко", testNow.Add(-time.Hour), testNow),
			expectedNil:   false,
			expectedError: false,
		},
		{
			name:          "absent or foreign card",
			mockRows:      sqlmock.NewRows(columns),
			expectedNil:   true,
			expectedError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewCardRepo(db)

			mock.ExpectQuery("SELECT (.+) FROM flashcards f JOIN saved_words w").
				WithArgs(int64(123), int64(42)).
				WillReturnRows(tt.mockRows)

			card, err := repo.GetByID(123, 42)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectedNil {
					assert.Nil(t, card)
				} else {
					assert.NotNil(t, card)
					assert.Equal(t, "apple", card.Word)
					assert.Equal(t, int64(123), card.UserID)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCardRepo_GetDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)

	horizon := testNow.Add(24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "word_id", "word", "definition", "created_at", "due"}).
		AddRow(1, 123, 5, "apple", "яблоко", testNow.Add(-48*time.Hour), testNow.Add(-time.Hour)).
		AddRow(2, 123, 6, "pear", "груша", testNow.Add(-24*time.Hour), testNow)

	mock.ExpectQuery("SELECT (.+) FROM flashcards f JOIN saved_words w").
		WithArgs(int64(123), horizon, 15).
		WillReturnRows(rows)

	cards, err := repo.GetDue(123, horizon, 15)

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, int64(1), cards[0].ID)
	assert.Equal(t, "pear", cards[1].Word)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_UpdateDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCardRepo(db)

	due := testNow.Add(72 * time.Hour)
	mock.ExpectExec("UPDATE flashcards").
		WithArgs(int64(42), due).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateDue(42, due)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_Counts(t *testing.T) {
	from := testNow.Add(-12 * time.Hour)
	to := testNow.Add(12 * time.Hour)

	t.Run("created between", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewCardRepo(db)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM flashcards").
			WithArgs(int64(123), from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountCreatedBetween(123, from, to)

		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("due", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewCardRepo(db)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM flashcards").
			WithArgs(int64(123), testNow).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountDue(123, testNow)

		assert.NoError(t, err)
		assert.Equal(t, 7, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewCardRepo(db)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM flashcards").
			WithArgs(int64(123)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		count, err := repo.CountByUser(123)

		assert.NoError(t, err)
		assert.Equal(t, 25, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
