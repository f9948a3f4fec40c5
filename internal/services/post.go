package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shaadicircle/internal/domain"
)

type postService struct {
	postRepo       domain.PostRepository
	commentRepo    domain.CommentRepository
	userRepo       domain.UserRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewPostService creates a PostService with the given repositories.
func NewPostService(
	postRepo domain.PostRepository,
	commentRepo domain.CommentRepository,
	userRepo domain.UserRepository,
	membershipRepo domain.MembershipRepository,
	timeout time.Duration,
) domain.PostService {
	return &postService{
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *postService) CreatePost(ctx context.Context, shaadiID, userID string, input domain.CreatePostInput) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := activeMembership(ctx, s.membershipRepo, shaadiID, userID); err != nil {
		return nil, err
	}
	if len(input.MediaURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one media item is required", domain.ErrInvalidInput)
	}
	if len(input.MediaURLs) != len(input.MediaTypes) {
		return nil, fmt.Errorf("%w: media_urls and media_types must have the same length", domain.ErrInvalidInput)
	}
	for _, mt := range input.MediaTypes {
		if mt != domain.MediaTypeImage && mt != domain.MediaTypeVideo {
			return nil, fmt.Errorf("%w: media type must be image or video", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	post := domain.NewPost(shaadiID, userID, input.MediaURLs, input.MediaTypes,
		strings.TrimSpace(input.Caption), input.Tags, now, now)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, shaadiID, userID string, params domain.PaginationParams) ([]*domain.PostWithMeta, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := activeMembership(ctx, s.membershipRepo, shaadiID, userID); err != nil {
		return nil, 0, err
	}

	total, err := s.postRepo.CountByShaadiID(ctx, shaadiID)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	posts, err := s.postRepo.ListByShaadiID(ctx, shaadiID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	// Enrich per post (N+1). Authors are cached per page; fine at this scale,
	// batch later if feeds grow.
	authorsByID := make(map[string]string)
	result := make([]*domain.PostWithMeta, 0, len(posts))
	for _, p := range posts {
		name, ok := authorsByID[p.UserID]
		if !ok {
			user, err := s.userRepo.GetByID(ctx, p.UserID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return nil, 0, fmt.Errorf("get author: %w", err)
				}
				name = ""
			} else {
				name = user.Username
			}
			authorsByID[p.UserID] = name
		}
		count, err := s.commentRepo.CountByPostID(ctx, p.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("count comments: %w", err)
		}
		result = append(result, &domain.PostWithMeta{Post: p, CommentCount: count, AuthorName: name})
	}
	return result, total, nil
}

// LikeToggle adds the user to likes if absent, removes them if present.
// Applying it twice returns the post to its original state.
func (s *postService) LikeToggle(ctx context.Context, postID, shaadiID, userID string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := activeMembership(ctx, s.membershipRepo, shaadiID, userID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	// Cross-check the supplied shaadi against the post's; a mismatched pair
	// must not reveal the post exists.
	if post.ShaadiID != shaadiID {
		return nil, domain.ErrNotFound
	}

	likes := make([]string, 0, len(post.Likes)+1)
	found := false
	for _, id := range post.Likes {
		if id == userID {
			found = true
			continue
		}
		likes = append(likes, id)
	}
	if !found {
		likes = append(likes, userID)
	}

	now := time.Now()
	if err := s.postRepo.UpdateLikes(ctx, postID, likes, now); err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	post.Likes = likes
	post.UpdatedAt = now
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID, userID, caption string, tags []string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	caption = strings.TrimSpace(caption)
	if err := s.postRepo.UpdateContent(ctx, postID, caption, tags, now); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post.Caption = caption
	post.Tags = tags
	post.UpdatedAt = now
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *postService) ownedPost(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return post, nil
}
