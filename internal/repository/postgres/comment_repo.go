package postgres

import (
	"context"
	"database/sql"
	"errors"

	"shaadicircle/internal/domain"
)

type commentRepository struct {
	DB *sql.DB
}

// NewCommentRepository returns a domain.CommentRepository implemented with Postgres.
func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.PostID, c.UserID, c.Text, c.CreatedAt).Scan(&c.ID)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE id = $1
	`
	c := &domain.Comment{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByPostID(ctx context.Context, postID string) ([]*domain.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) CountByPostID(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	return count, err
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
