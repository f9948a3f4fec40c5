package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shaadicircle/internal/domain"
)

type shaadiRepository struct {
	DB *sql.DB
}

// NewShaadiRepository returns a domain.ShaadiRepository implemented with Postgres.
func NewShaadiRepository(db *sql.DB) domain.ShaadiRepository {
	return &shaadiRepository{DB: db}
}

// Create inserts the shaadi and the creator membership in one transaction so
// an event can never exist without its creator's membership.
func (r *shaadiRepository) Create(ctx context.Context, s *domain.Shaadi, creator *domain.Membership) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	shaadiQuery := `
		INSERT INTO shaadis (name, bride_name, groom_name, date, location, image, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, shaadiQuery,
		s.Name, s.BrideName, s.GroomName, s.Date, s.Location, s.Image, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID); err != nil {
		return err
	}

	creator.ShaadiID = s.ID
	memberQuery := `
		INSERT INTO memberships (shaadi_id, user_id, role, code, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, memberQuery,
		creator.ShaadiID, creator.UserID, creator.Role, creator.Code, creator.Blocked, creator.CreatedAt, creator.UpdatedAt,
	).Scan(&creator.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *shaadiRepository) GetByID(ctx context.Context, id string) (*domain.Shaadi, error) {
	query := `
		SELECT id, name, bride_name, groom_name, date, location, image, created_by, created_at, updated_at
		FROM shaadis
		WHERE id = $1
	`
	return scanShaadi(r.DB.QueryRowContext(ctx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShaadi(row rowScanner) (*domain.Shaadi, error) {
	s := &domain.Shaadi{}
	var locNull, imgNull sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.BrideName, &s.GroomName, &s.Date, &locNull, &imgNull, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if locNull.Valid {
		s.Location = locNull.String
	}
	if imgNull.Valid {
		s.Image = imgNull.String
	}
	return s, nil
}

// Delete cascades to comments, posts, invites, and memberships in one
// transaction. Irreversible.
func (r *shaadiRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE shaadi_id = $1)`,
		`DELETE FROM posts WHERE shaadi_id = $1`,
		`DELETE FROM invites WHERE shaadi_id = $1`,
		`DELETE FROM memberships WHERE shaadi_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM shaadis WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
