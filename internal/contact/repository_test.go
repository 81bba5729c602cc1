package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	m := &Message{
		Name:        "Asha",
		Email:       "a@example.com",
		Phone:       "9999999999",
		Description: "Where is my order?",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contacts").
			WithArgs(m.Name, m.Email, m.Phone, m.Description).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		saved, err := repo.Insert(context.Background(), m)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), saved.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contacts").
			WillReturnError(errors.New("db error"))

		_, err := repo.Insert(context.Background(), m)
		assert.Error(t, err)
	})
}

func TestContactRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM contacts").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "phone", "description", "created_at"}).
			AddRow(2, "B", "b@example.com", "", "Hi", now).
			AddRow(1, "A", "a@example.com", "", "Hello", now.Add(-time.Hour)))

	messages, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, uint(2), messages[0].ID)
}

func TestContactService_Submit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(NewRepository(db))

	t.Run("RejectsBlankFields", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), &Message{Name: "  ", Email: "a@example.com"})
		assert.ErrorIs(t, err, ErrIncompleteMessage)
	})

	t.Run("Persists", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO contacts").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

		saved, err := svc.Submit(context.Background(), &Message{
			Name: "Asha", Email: "a@example.com", Description: "Hello",
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), saved.ID)
	})
}
