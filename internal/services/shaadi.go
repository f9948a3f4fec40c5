package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shaadicircle/internal/domain"
)

type shaadiService struct {
	shaadiRepo     domain.ShaadiRepository
	membershipRepo domain.MembershipRepository
	contextTimeout time.Duration
}

// NewShaadiService creates a ShaadiService with the given repositories.
func NewShaadiService(shaadiRepo domain.ShaadiRepository, membershipRepo domain.MembershipRepository, timeout time.Duration) domain.ShaadiService {
	return &shaadiService{
		shaadiRepo:     shaadiRepo,
		membershipRepo: membershipRepo,
		contextTimeout: timeout,
	}
}

func (s *shaadiService) CreateShaadi(ctx context.Context, creatorID string, input domain.CreateShaadiInput) (*domain.Shaadi, *domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if creatorID == "" {
		return nil, nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.BrideName) == "" || strings.TrimSpace(input.GroomName) == "" {
		return nil, nil, fmt.Errorf("%w: bride and groom names are required", domain.ErrInvalidInput)
	}

	// Retry on join-code collision; the shaadi insert rolls back with it.
	for attempt := 0; attempt < membershipCodeTries; attempt++ {
		code, err := generateCode(codeDigits)
		if err != nil {
			return nil, nil, fmt.Errorf("generate join code: %w", err)
		}
		now := time.Now()
		shaadi := domain.NewShaadi(name, strings.TrimSpace(input.BrideName), strings.TrimSpace(input.GroomName),
			input.Date, input.Location, input.Image, creatorID, now, now)
		creator := domain.NewMembership("", creatorID, domain.RoleCreator, code, now, now)

		err = s.shaadiRepo.Create(ctx, shaadi, creator)
		if err == nil {
			return shaadi, creator, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, nil, fmt.Errorf("create shaadi: %w", err)
		}
	}
	return nil, nil, fmt.Errorf("could not allocate a unique join code")
}

func (s *shaadiService) ListForUser(ctx context.Context, userID string) ([]*domain.MembershipWithShaadi, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memberships, err := s.membershipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	shaadisByID := make(map[string]*domain.Shaadi)
	result := make([]*domain.MembershipWithShaadi, 0, len(memberships))
	for _, m := range memberships {
		shaadi, ok := shaadisByID[m.ShaadiID]
		if !ok {
			shaadi, err = s.shaadiRepo.GetByID(ctx, m.ShaadiID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Shaadi deleted but membership remains; skip the entry.
					continue
				}
				return nil, fmt.Errorf("get shaadi for membership: %w", err)
			}
			shaadisByID[m.ShaadiID] = shaadi
		}
		result = append(result, &domain.MembershipWithShaadi{Membership: m, Shaadi: shaadi})
	}
	return result, nil
}

func (s *shaadiService) Switch(ctx context.Context, userID, code string) (*domain.Shaadi, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	membership, err := s.membershipRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get membership by code: %w", err)
	}
	if membership.UserID != userID || membership.Blocked {
		return nil, "", domain.ErrUnauthorized
	}
	shaadi, err := s.shaadiRepo.GetByID(ctx, membership.ShaadiID)
	if err != nil {
		return nil, "", fmt.Errorf("get shaadi: %w", err)
	}
	return shaadi, membership.Role, nil
}

func (s *shaadiService) SetMemberBlocked(ctx context.Context, shaadiID, callerID, memberUserID string, blocked bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	shaadi, err := s.shaadiRepo.GetByID(ctx, shaadiID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get shaadi: %w", err)
	}
	if shaadi.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	if memberUserID == shaadi.CreatedBy {
		return fmt.Errorf("%w: the creator cannot be blocked", domain.ErrInvalidInput)
	}
	if err := s.membershipRepo.SetBlocked(ctx, shaadiID, memberUserID, blocked); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set blocked: %w", err)
	}
	return nil
}

func (s *shaadiService) DeleteShaadi(ctx context.Context, shaadiID, callerID, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	shaadi, err := s.shaadiRepo.GetByID(ctx, shaadiID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get shaadi: %w", err)
	}
	if shaadi.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	if err := s.shaadiRepo.Delete(ctx, shaadiID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete shaadi: %w", err)
	}
	return nil
}
