package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shaadicircle/internal/domain"
)

const defaultInviteTTL = 30 * 24 * time.Hour

type inviteService struct {
	inviteRepo     domain.InviteRepository
	membershipRepo domain.MembershipRepository
	shaadiRepo     domain.ShaadiRepository
	emailService   domain.EmailService
	baseURL        string
	inviteTTL      time.Duration
	contextTimeout time.Duration
}

// NewInviteService creates an InviteService. baseURL is the public frontend
// origin used to build invite links.
func NewInviteService(
	inviteRepo domain.InviteRepository,
	membershipRepo domain.MembershipRepository,
	shaadiRepo domain.ShaadiRepository,
	emailService domain.EmailService,
	baseURL string,
	inviteTTL time.Duration,
	timeout time.Duration,
) domain.InviteService {
	if inviteTTL <= 0 {
		inviteTTL = defaultInviteTTL
	}
	return &inviteService{
		inviteRepo:     inviteRepo,
		membershipRepo: membershipRepo,
		shaadiRepo:     shaadiRepo,
		emailService:   emailService,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		inviteTTL:      inviteTTL,
		contextTimeout: timeout,
	}
}

// requireCreator loads the shaadi and rejects everyone but its creator.
func (s *inviteService) requireCreator(ctx context.Context, shaadiID, callerID string) (*domain.Shaadi, error) {
	shaadi, err := s.shaadiRepo.GetByID(ctx, shaadiID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get shaadi: %w", err)
	}
	if shaadi.CreatedBy != callerID {
		return nil, domain.ErrForbidden
	}
	return shaadi, nil
}

func (s *inviteService) CreateInvite(ctx context.Context, shaadiID, callerID string, input domain.CreateInviteInput) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireCreator(ctx, shaadiID, callerID); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(input.GuestEmail))
	phone := strings.TrimSpace(input.GuestPhone)
	if email == "" && phone == "" {
		return nil, fmt.Errorf("%w: guest email or phone is required", domain.ErrInvalidInput)
	}
	if email != "" && !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if input.Side != "" && input.Side != domain.SideGroom && input.Side != domain.SideBride {
		return nil, fmt.Errorf("%w: side must be groom or bride", domain.ErrInvalidInput)
	}

	code, err := generateCode(codeDigits)
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.inviteTTL)
	invite := &domain.Invite{
		ShaadiID:     shaadiID,
		GuestName:    strings.TrimSpace(input.GuestName),
		GuestEmail:   email,
		GuestPhone:   phone,
		Relationship: strings.TrimSpace(input.Relationship),
		Side:         input.Side,
		Status:       domain.InviteStatusPending,
		InviteCode:   code,
		InviteLink:   fmt.Sprintf("%s/join?code=%s", s.baseURL, code),
		ExpiresAt:    &expiresAt,
		Notes:        strings.TrimSpace(input.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return invite, nil
}

func (s *inviteService) ListInvites(ctx context.Context, shaadiID, callerID string) ([]*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireCreator(ctx, shaadiID, callerID); err != nil {
		return nil, err
	}
	invites, err := s.inviteRepo.ListByShaadiID(ctx, shaadiID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	// Surface derived expiry so the dashboard never shows a stale pending.
	now := time.Now()
	for _, inv := range invites {
		inv.Status = inv.EffectiveStatus(now)
	}
	return invites, nil
}

func (s *inviteService) SendInvite(ctx context.Context, inviteID, callerID string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, shaadi, err := s.inviteForCreator(ctx, inviteID, callerID)
	if err != nil {
		return nil, err
	}
	if invite.EffectiveStatus(time.Now()) != domain.InviteStatusPending {
		return nil, fmt.Errorf("%w: only pending invites can be sent", domain.ErrInvalidInput)
	}
	if invite.GuestEmail == "" {
		return nil, fmt.Errorf("%w: invite has no guest email", domain.ErrInvalidInput)
	}

	if err := s.emailService.SendInvite(ctx, s.emailData(invite, shaadi)); err != nil {
		return nil, fmt.Errorf("send invite email: %w", err)
	}

	now := time.Now()
	if err := s.inviteRepo.MarkSent(ctx, invite.ID, now); err != nil {
		return nil, fmt.Errorf("mark sent: %w", err)
	}
	invite.Status = domain.InviteStatusSent
	invite.SentAt = &now
	return invite, nil
}

func (s *inviteService) ResendInvite(ctx context.Context, inviteID, callerID string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, shaadi, err := s.inviteForCreator(ctx, inviteID, callerID)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil && invite.GuestEmail != "" {
		if err := s.emailService.SendReminder(ctx, s.emailData(invite, shaadi)); err != nil {
			return nil, fmt.Errorf("send reminder email: %w", err)
		}
	}

	now := time.Now()
	if err := s.inviteRepo.BumpReminder(ctx, invite.ID, now); err != nil {
		return nil, fmt.Errorf("bump reminder: %w", err)
	}
	invite.ReminderCount++
	invite.LastReminderSent = &now
	return invite, nil
}

func (s *inviteService) DeleteInvite(ctx context.Context, inviteID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, _, err := s.inviteForCreator(ctx, inviteID, callerID)
	if err != nil {
		return err
	}
	if err := s.inviteRepo.Delete(ctx, invite.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (s *inviteService) DeclineInvite(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, err := s.inviteRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invite by code: %w", err)
	}
	if invite.Status == domain.InviteStatusDeclined {
		return nil
	}
	if !invite.Joinable(time.Now()) {
		return domain.ErrInviteNotJoinable
	}
	if err := s.inviteRepo.MarkDeclined(ctx, invite.ID, time.Now()); err != nil {
		return fmt.Errorf("mark declined: %w", err)
	}
	return nil
}

// TrackOpen increments the open counter. Best-effort: a storage error must
// never fail the guest's navigation.
func (s *inviteService) TrackOpen(ctx context.Context, code string) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	_ = s.inviteRepo.IncrementOpen(ctx, strings.TrimSpace(code))
}

// TrackClick increments the click counter. Best-effort, like TrackOpen.
func (s *inviteService) TrackClick(ctx context.Context, code string) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	_ = s.inviteRepo.IncrementClick(ctx, strings.TrimSpace(code))
}

func (s *inviteService) GetGuestStats(ctx context.Context, shaadiID, callerID string) (*domain.GuestStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireCreator(ctx, shaadiID, callerID); err != nil {
		return nil, err
	}
	invites, err := s.inviteRepo.ListByShaadiID(ctx, shaadiID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}

	stats := &domain.GuestStats{Total: len(invites)}
	now := time.Now()
	for _, inv := range invites {
		switch inv.EffectiveStatus(now) {
		case domain.InviteStatusPending:
			stats.Pending++
		case domain.InviteStatusSent:
			stats.Sent++
		case domain.InviteStatusJoined:
			stats.Joined++
		case domain.InviteStatusDeclined:
			stats.Declined++
		case domain.InviteStatusExpired:
			stats.Expired++
		}
	}
	return stats, nil
}

func (s *inviteService) GetShaadiMembers(ctx context.Context, shaadiID, callerID string) ([]*domain.ShaadiMember, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := activeMembership(ctx, s.membershipRepo, shaadiID, callerID); err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.ListMembersByShaadiID(ctx, shaadiID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *inviteService) inviteForCreator(ctx context.Context, inviteID, callerID string) (*domain.Invite, *domain.Shaadi, error) {
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get invite: %w", err)
	}
	shaadi, err := s.requireCreator(ctx, invite.ShaadiID, callerID)
	if err != nil {
		return nil, nil, err
	}
	return invite, shaadi, nil
}

func (s *inviteService) emailData(invite *domain.Invite, shaadi *domain.Shaadi) *domain.InviteEmailData {
	return &domain.InviteEmailData{
		Email:      invite.GuestEmail,
		GuestName:  invite.GuestName,
		ShaadiName: shaadi.Name,
		BrideName:  shaadi.BrideName,
		GroomName:  shaadi.GroomName,
		InviteLink: invite.InviteLink,
		InviteCode: invite.InviteCode,
	}
}
