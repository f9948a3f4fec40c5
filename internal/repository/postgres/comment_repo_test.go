package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shaadicircle/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := &domain.Comment{PostID: "post-1", UserID: "user-1", Text: "beautiful!", CreatedAt: now}

	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs("post-1", "user-1", "beautiful!", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("com-1"))

	repo := NewCommentRepository(db)
	require.NoError(t, repo.Create(context.Background(), c))
	require.Equal(t, "com-1", c.ID)
}

func TestCommentRepository_ListByPostID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, post_id, user_id, text, created_at`).
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "text", "created_at"}).
			AddRow("com-2", "post-1", "user-2", "second", now.Add(time.Minute)).
			AddRow("com-1", "post-1", "user-1", "first", now))

	repo := NewCommentRepository(db)
	comments, err := repo.ListByPostID(context.Background(), "post-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "com-2", comments[0].ID)
}

func TestCommentRepository_CountByPostID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments`).
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewCommentRepository(db)
	count, err := repo.CountByPostID(context.Background(), "post-1")
	require.NoError(t, err)
	require.Equal(t, 4, count)
}

func TestCommentRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM comments WHERE id`).
			WithArgs("com-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewCommentRepository(db)
		require.NoError(t, repo.Delete(context.Background(), "com-1"))
	})

	t.Run("unknown comment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM comments WHERE id`).
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewCommentRepository(db)
		require.ErrorIs(t, repo.Delete(context.Background(), "ghost"), domain.ErrNotFound)
	})
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, post_id, user_id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewCommentRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
