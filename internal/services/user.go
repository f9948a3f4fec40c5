package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shaadicircle/internal/domain"
)

const (
	minPasswordLen      = 8
	minUsernameLen      = 3
	membershipCodeTries = 5
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	codeRegexp  = regexp.MustCompile(`^\d{6}$`)
)

type userService struct {
	userRepo       domain.UserRepository
	membershipRepo domain.MembershipRepository
	shaadiRepo     domain.ShaadiRepository
	inviteRepo     domain.InviteRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(
	userRepo domain.UserRepository,
	membershipRepo domain.MembershipRepository,
	shaadiRepo domain.ShaadiRepository,
	inviteRepo domain.InviteRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		shaadiRepo:     shaadiRepo,
		inviteRepo:     inviteRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", domain.ErrInvalidInput, minUsernameLen)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	user, err := s.createUser(ctx, username, email, password, "")
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		// Best-effort: a failed welcome email never fails registration.
		_ = s.emailService.SendWelcome(ctx, &domain.WelcomeEmailData{Email: user.Email, Username: user.Username})
	}
	return user, nil
}

func (s *userService) createUser(ctx context.Context, username, email, password, profilePicURL string) (*domain.User, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := domain.NewUser(username, email, hash, salt, profilePicURL, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// LoginWithCode resolves a 6-digit code as a membership join code first, then
// as an invite code. A membership code logs the member straight in; a live
// invite code returns the event so the client can show the join form.
func (s *userService) LoginWithCode(ctx context.Context, code string) (*domain.CodeLoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	code = strings.TrimSpace(code)
	if !codeRegexp.MatchString(code) {
		return nil, domain.ErrUnauthorized
	}

	membership, err := s.membershipRepo.GetByCode(ctx, code)
	if err == nil {
		return s.memberLogin(ctx, membership)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership by code: %w", err)
	}

	invite, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get invite by code: %w", err)
	}

	// An already-joined invite code behaves like the member's own code.
	if invite.Status == domain.InviteStatusJoined && invite.JoinedUserID != nil {
		membership, err := s.membershipRepo.GetByShaadiAndUser(ctx, invite.ShaadiID, *invite.JoinedUserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, fmt.Errorf("get membership: %w", err)
		}
		return s.memberLogin(ctx, membership)
	}

	if !invite.Joinable(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	shaadi, err := s.shaadiRepo.GetByID(ctx, invite.ShaadiID)
	if err != nil {
		return nil, fmt.Errorf("get shaadi: %w", err)
	}
	return &domain.CodeLoginResult{
		Shaadi:    shaadi,
		IsJoined:  false,
		GuestName: invite.GuestName,
	}, nil
}

func (s *userService) memberLogin(ctx context.Context, membership *domain.Membership) (*domain.CodeLoginResult, error) {
	if membership.Blocked {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, membership.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	shaadi, err := s.shaadiRepo.GetByID(ctx, membership.ShaadiID)
	if err != nil {
		return nil, fmt.Errorf("get shaadi: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.CodeLoginResult{
		Token:    token,
		User:     user,
		Shaadi:   shaadi,
		Role:     membership.Role,
		IsJoined: true,
	}, nil
}

func (s *userService) JoinShaadi(ctx context.Context, input domain.JoinShaadiInput) (*domain.JoinShaadiResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, err := s.inviteRepo.GetByCode(ctx, strings.TrimSpace(input.Code))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get invite by code: %w", err)
	}

	// Re-joining a joined code short-circuits to the existing membership so a
	// code can never produce two memberships.
	if invite.Status == domain.InviteStatusJoined && invite.JoinedUserID != nil {
		return s.existingJoin(ctx, invite)
	}
	if !invite.Joinable(time.Now()) {
		return nil, domain.ErrInviteNotJoinable
	}

	user, err := s.resolveJoiningUser(ctx, input)
	if err != nil {
		return nil, err
	}

	// The recipient may already hold a membership (e.g. invited twice);
	// return it instead of creating a duplicate.
	if existing, err := s.membershipRepo.GetByShaadiAndUser(ctx, invite.ShaadiID, user.ID); err == nil {
		return s.joinResult(ctx, user, existing)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	membership, err := s.createGuestMembership(ctx, invite, user.ID)
	if err != nil {
		return nil, err
	}
	return s.joinResult(ctx, user, membership)
}

func (s *userService) existingJoin(ctx context.Context, invite *domain.Invite) (*domain.JoinShaadiResult, error) {
	membership, err := s.membershipRepo.GetByShaadiAndUser(ctx, invite.ShaadiID, *invite.JoinedUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, membership.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.joinResult(ctx, user, membership)
}

// resolveJoiningUser reuses an existing account by email (verifying the
// password) or registers a fresh one from the guest profile.
func (s *userService) resolveJoiningUser(ctx context.Context, input domain.JoinShaadiInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if err := s.hasher.Compare(user.PasswordHash, user.Salt, input.Password); err != nil {
			return nil, domain.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", domain.ErrInvalidInput, minUsernameLen)
	}
	return s.createUser(ctx, username, email, input.Password, input.ProfilePicURL)
}

func (s *userService) createGuestMembership(ctx context.Context, invite *domain.Invite, userID string) (*domain.Membership, error) {
	now := time.Now()
	for attempt := 0; attempt < membershipCodeTries; attempt++ {
		code, err := generateCode(codeDigits)
		if err != nil {
			return nil, fmt.Errorf("generate join code: %w", err)
		}
		membership := domain.NewMembership(invite.ShaadiID, userID, domain.RoleGuest, code, now, now)
		err = s.inviteRepo.Join(ctx, invite.ID, userID, membership, now)
		if err == nil {
			return membership, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("join invite: %w", err)
		}
	}
	return nil, fmt.Errorf("could not allocate a unique join code")
}

func (s *userService) joinResult(ctx context.Context, user *domain.User, membership *domain.Membership) (*domain.JoinShaadiResult, error) {
	shaadi, err := s.shaadiRepo.GetByID(ctx, membership.ShaadiID)
	if err != nil {
		return nil, fmt.Errorf("get shaadi: %w", err)
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.JoinShaadiResult{
		Token:      token,
		User:       user,
		Shaadi:     shaadi,
		Membership: membership,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
