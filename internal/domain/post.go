package domain

import (
	"context"
	"time"
)

// Media types accepted on a post.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post is a media post inside a shaadi. Likes holds the user IDs that have
// liked the post; MediaTypes is index-aligned with MediaURLs.
// swagger:model Post
type Post struct {
	ID         string    `json:"id"`
	ShaadiID   string    `json:"shaadi_id"`
	UserID     string    `json:"user_id"`
	MediaURLs  []string  `json:"media_urls"`
	MediaTypes []string  `json:"media_types"`
	Caption    string    `json:"caption,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Likes      []string  `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPost returns a new Post with the given fields. ID is typically set by the repository on create.
func NewPost(shaadiID, userID string, mediaURLs, mediaTypes []string, caption string, tags []string, createdAt, updatedAt time.Time) *Post {
	return &Post{
		ShaadiID:   shaadiID,
		UserID:     userID,
		MediaURLs:  mediaURLs,
		MediaTypes: mediaTypes,
		Caption:    caption,
		Tags:       tags,
		Likes:      []string{},
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// PostWithMeta is a feed item: a post enriched with its comment count and the
// author's display name.
type PostWithMeta struct {
	Post         *Post  `json:"post"`
	CommentCount int    `json:"comment_count"`
	AuthorName   string `json:"author_name"`
}

// PostRepository defines the interface for post storage.
type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListByShaadiID(ctx context.Context, shaadiID string, limit, offset int) ([]*Post, error)
	CountByShaadiID(ctx context.Context, shaadiID string) (int, error)
	UpdateContent(ctx context.Context, id, caption string, tags []string, at time.Time) error
	UpdateLikes(ctx context.Context, id string, likes []string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// CreatePostInput holds the member-supplied post fields.
type CreatePostInput struct {
	MediaURLs  []string
	MediaTypes []string
	Caption    string
	Tags       []string
}

// PostService defines the event-scoped content logic for posts.
type PostService interface {
	CreatePost(ctx context.Context, shaadiID, userID string, input CreatePostInput) (*Post, error)
	// ListPosts returns the feed newest first with pagination, plus the total
	// post count for the shaadi.
	ListPosts(ctx context.Context, shaadiID, userID string, params PaginationParams) ([]*PostWithMeta, int, error)
	// LikeToggle adds the user to likes if absent, removes if present.
	LikeToggle(ctx context.Context, postID, shaadiID, userID string) (*Post, error)
	UpdatePost(ctx context.Context, postID, userID, caption string, tags []string) (*Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}
