package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"shaadicircle/internal/domain"
)

type postRepository struct {
	DB *sql.DB
}

// NewPostRepository returns a domain.PostRepository implemented with Postgres.
func NewPostRepository(db *sql.DB) domain.PostRepository {
	return &postRepository{DB: db}
}

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `
		INSERT INTO posts (shaadi_id, user_id, media_urls, media_types, caption, tags, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.ShaadiID, p.UserID, pq.Array(p.MediaURLs), pq.Array(p.MediaTypes),
		p.Caption, pq.Array(p.Tags), pq.Array(p.Likes), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

const postSelect = `
	SELECT id, shaadi_id, user_id, media_urls, media_types, caption, tags, likes, created_at, updated_at
	FROM posts`

func scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var captionNull sql.NullString
	err := row.Scan(
		&p.ID, &p.ShaadiID, &p.UserID,
		pq.Array(&p.MediaURLs), pq.Array(&p.MediaTypes),
		&captionNull, pq.Array(&p.Tags), pq.Array(&p.Likes),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if captionNull.Valid {
		p.Caption = captionNull.String
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	return p, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(r.DB.QueryRowContext(ctx, postSelect+` WHERE id = $1`, id))
}

func (r *postRepository) ListByShaadiID(ctx context.Context, shaadiID string, limit, offset int) ([]*domain.Post, error) {
	query := postSelect + `
		WHERE shaadi_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, shaadiID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepository) CountByShaadiID(ctx context.Context, shaadiID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE shaadi_id = $1`, shaadiID).Scan(&count)
	return count, err
}

func (r *postRepository) UpdateContent(ctx context.Context, id, caption string, tags []string, at time.Time) error {
	query := `
		UPDATE posts SET caption = $1, tags = $2, updated_at = $3
		WHERE id = $4
	`
	return r.exec(ctx, query, caption, pq.Array(tags), at, id)
}

func (r *postRepository) UpdateLikes(ctx context.Context, id string, likes []string, at time.Time) error {
	query := `
		UPDATE posts SET likes = $1, updated_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, query, pq.Array(likes), at, id)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *postRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
