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

var postCols = []string{"id", "shaadi_id", "user_id", "media_urls", "media_types", "caption", "tags", "likes", "created_at", "updated_at"}

func TestPostRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := &domain.Post{
		ShaadiID:   "shaadi-1",
		UserID:     "user-1",
		MediaURLs:  []string{"http://m/1.jpg", "http://m/2.mp4"},
		MediaTypes: []string{domain.MediaTypeImage, domain.MediaTypeVideo},
		Caption:    "haldi",
		Tags:       []string{"haldi"},
		Likes:      []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("post-1"))

	repo := NewPostRepository(db)
	require.NoError(t, repo.Create(ctx, p))
	require.Equal(t, "post-1", p.ID)
}

func TestPostRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success scans arrays", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, shaadi_id, user_id, media_urls`).
			WithArgs("post-1").
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-1", "shaadi-1", "user-1", `{http://m/1.jpg}`, `{image}`, "haldi", `{haldi,mehndi}`, `{user-2,user-3}`, now, now))

		repo := NewPostRepository(db)
		got, err := repo.GetByID(ctx, "post-1")
		require.NoError(t, err)
		require.Equal(t, []string{"http://m/1.jpg"}, got.MediaURLs)
		require.Equal(t, []string{domain.MediaTypeImage}, got.MediaTypes)
		require.Equal(t, []string{"haldi", "mehndi"}, got.Tags)
		require.Equal(t, []string{"user-2", "user-3"}, got.Likes)
	})

	t.Run("empty likes scans to empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, shaadi_id, user_id, media_urls`).
			WithArgs("post-2").
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("post-2", "shaadi-1", "user-1", `{http://m/1.jpg}`, `{image}`, nil, `{}`, `{}`, now, now))

		repo := NewPostRepository(db)
		got, err := repo.GetByID(ctx, "post-2")
		require.NoError(t, err)
		require.NotNil(t, got.Likes)
		require.Empty(t, got.Likes)
		require.Empty(t, got.Caption)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, shaadi_id, user_id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewPostRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPostRepository_ListByShaadiID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs("shaadi-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("post-2", "shaadi-1", "user-1", `{http://m/2.jpg}`, `{image}`, "second", `{}`, `{}`, now.Add(time.Hour), now.Add(time.Hour)).
			AddRow("post-1", "shaadi-1", "user-2", `{http://m/1.jpg}`, `{image}`, "first", `{}`, `{}`, now, now))

	repo := NewPostRepository(db)
	posts, err := repo.ListByShaadiID(ctx, "shaadi-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "post-2", posts[0].ID)
}

func TestPostRepository_UpdateLikes(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE posts SET likes`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostRepository(db)
		require.NoError(t, repo.UpdateLikes(ctx, "post-1", []string{"user-2"}, at))
	})

	t.Run("unknown post", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE posts SET likes`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostRepository(db)
		require.ErrorIs(t, repo.UpdateLikes(ctx, "ghost", nil, at), domain.ErrNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comments WHERE post_id`).
		WithArgs("post-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM posts WHERE id`).
		WithArgs("post-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostRepository(db)
	require.NoError(t, repo.Delete(ctx, "post-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
