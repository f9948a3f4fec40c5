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

func TestShaadiRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC)

	t.Run("success inserts shaadi and creator membership in one tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		shaadi := &domain.Shaadi{
			Name:      "Asha & Ravi",
			BrideName: "Asha",
			GroomName: "Ravi",
			Date:      date,
			Location:  "Jaipur",
			CreatedBy: "user-1",
			CreatedAt: now,
			UpdatedAt: now,
		}
		creator := &domain.Membership{
			UserID:    "user-1",
			Role:      domain.RoleCreator,
			Code:      "123456",
			CreatedAt: now,
			UpdatedAt: now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO shaadis`).
			WithArgs("Asha & Ravi", "Asha", "Ravi", date, "Jaipur", "", "user-1", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("shaadi-1"))
		mock.ExpectQuery(`INSERT INTO memberships`).
			WithArgs("shaadi-1", "user-1", domain.RoleCreator, "123456", false, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("mem-1"))
		mock.ExpectCommit()

		repo := NewShaadiRepository(db)
		require.NoError(t, repo.Create(ctx, shaadi, creator))
		require.Equal(t, "shaadi-1", shaadi.ID)
		require.Equal(t, "mem-1", creator.ID)
		require.Equal(t, "shaadi-1", creator.ShaadiID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("membership insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO shaadis`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("shaadi-1"))
		mock.ExpectQuery(`INSERT INTO memberships`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewShaadiRepository(db)
		err = repo.Create(ctx, &domain.Shaadi{Date: date}, &domain.Membership{})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShaadiRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 12, 12, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "bride_name", "groom_name", "date", "location", "image", "created_by", "created_at", "updated_at"}

	t.Run("success with null location and image", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, bride_name, groom_name, date, location, image, created_by`).
			WithArgs("shaadi-1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("shaadi-1", "Asha & Ravi", "Asha", "Ravi", date, nil, nil, "user-1", now, now))

		repo := NewShaadiRepository(db)
		got, err := repo.GetByID(ctx, "shaadi-1")
		require.NoError(t, err)
		require.Equal(t, "Asha & Ravi", got.Name)
		require.Empty(t, got.Location)
		require.Empty(t, got.Image)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, bride_name, groom_name`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewShaadiRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestShaadiRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades content before the shaadi row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM comments WHERE post_id IN`).
			WithArgs("shaadi-1").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM posts WHERE shaadi_id`).
			WithArgs("shaadi-1").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM invites WHERE shaadi_id`).
			WithArgs("shaadi-1").WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM memberships WHERE shaadi_id`).
			WithArgs("shaadi-1").WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`DELETE FROM shaadis WHERE id`).
			WithArgs("shaadi-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewShaadiRepository(db)
		require.NoError(t, repo.Delete(ctx, "shaadi-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM comments`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM posts`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM invites`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM memberships`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM shaadis`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewShaadiRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
