package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shaadicircle/internal/domain"
)

type commentService struct {
	commentRepo    domain.CommentRepository
	postRepo       domain.PostRepository
	userRepo       domain.UserRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewCommentService creates a CommentService with the given repositories.
func NewCommentService(
	commentRepo domain.CommentRepository,
	postRepo domain.PostRepository,
	userRepo domain.UserRepository,
	membershipRepo domain.MembershipRepository,
	timeout time.Duration,
) domain.CommentService {
	return &commentService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *commentService) AddComment(ctx context.Context, postID, shaadiID, userID, text string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post.ShaadiID != shaadiID {
		return nil, domain.ErrNotFound
	}
	if _, err := activeMembership(ctx, s.membershipRepo, shaadiID, userID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID, userID string) ([]*domain.CommentWithAuthor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if _, err := activeMembership(ctx, s.membershipRepo, post.ShaadiID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	authorsByID := make(map[string]string)
	result := make([]*domain.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		name, ok := authorsByID[c.UserID]
		if !ok {
			user, err := s.userRepo.GetByID(ctx, c.UserID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("get author: %w", err)
				}
				name = ""
			} else {
				name = user.Username
			}
			authorsByID[c.UserID] = name
		}
		result = append(result, &domain.CommentWithAuthor{Comment: c, AuthorName: name})
	}
	return result, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
