package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

// User represents a registered account.
// swagger:model User
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Salt          string    `json:"-"`
	ProfilePicURL string    `json:"profile_pic_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, email, passwordHash, salt, profilePicURL string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:      username,
		Email:         email,
		PasswordHash:  passwordHash,
		Salt:          salt,
		ProfilePicURL: profilePicURL,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, username string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	// Create inserts the user and sets user.ID. Returns ErrDuplicateUser when
	// the username or email is already taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// CodeLoginResult is what a join-code login resolves to. When the code maps to
// an existing membership, Token and User are set and IsJoined is true. When it
// maps to a live invite, only Shaadi (and GuestName, if known) are set so the
// client can show the join form.
type CodeLoginResult struct {
	Token     string  `json:"token,omitempty"`
	User      *User   `json:"user,omitempty"`
	Shaadi    *Shaadi `json:"shaadi"`
	Role      string  `json:"role,omitempty"`
	IsJoined  bool    `json:"is_joined"`
	GuestName string  `json:"guest_name,omitempty"`
}

// JoinShaadiInput is the guest profile submitted when completing an invite.
type JoinShaadiInput struct {
	Code          string
	Username      string
	Email         string
	Password      string
	ProfilePicURL string
}

// JoinShaadiResult bundles everything the client needs after a guest joins.
type JoinShaadiResult struct {
	Token      string      `json:"token"`
	User       *User       `json:"user"`
	Shaadi     *Shaadi     `json:"shaadi"`
	Membership *Membership `json:"membership"`
}

// UserService defines registration, authentication, and profile logic.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
	// LoginWithCode resolves a membership join code or a live invite code.
	// Returns ErrUnauthorized when the code matches neither or the membership
	// is blocked.
	LoginWithCode(ctx context.Context, code string) (*CodeLoginResult, error)
	// JoinShaadi completes an invite: creates (or reuses) the user, marks the
	// invite joined, and creates the guest membership. Joining an
	// already-joined code returns the existing membership.
	JoinShaadi(ctx context.Context, input JoinShaadiInput) (*JoinShaadiResult, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
