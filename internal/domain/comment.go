package domain

import (
	"context"
	"time"
)

// Comment is a member's comment on a post.
// swagger:model Comment
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithAuthor pairs a comment with the author's display name.
type CommentWithAuthor struct {
	Comment    *Comment `json:"comment"`
	AuthorName string   `json:"author_name"`
}

// CommentRepository defines the interface for comment storage.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]*Comment, error)
	CountByPostID(ctx context.Context, postID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// CommentService defines the post-scoped comment logic.
type CommentService interface {
	AddComment(ctx context.Context, postID, shaadiID, userID, text string) (*Comment, error)
	ListComments(ctx context.Context, postID, userID string) ([]*CommentWithAuthor, error)
	// DeleteComment removes the comment; author only, else ErrForbidden.
	DeleteComment(ctx context.Context, commentID, userID string) error
}
