package domain

import (
	"context"
	"errors"
	"time"
)

// Membership roles.
const (
	RoleCreator  = "creator"
	RoleGuest    = "guest"
	RoleRelative = "relative"
)

// ErrMemberBlocked is returned when a blocked member attempts an event-scoped
// operation.
var ErrMemberBlocked = errors.New("member is blocked")

// Membership pairs a user with a shaadi, carrying the role and the 6-digit
// join code that both authenticates and selects the event context.
// swagger:model Membership
type Membership struct {
	ID        string    `json:"id"`
	ShaadiID  string    `json:"shaadi_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Code      string    `json:"code"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMembership returns a new Membership with the given fields. ID is typically set by the repository on create.
func NewMembership(shaadiID, userID, role, code string, createdAt, updatedAt time.Time) *Membership {
	return &Membership{
		ShaadiID:  shaadiID,
		UserID:    userID,
		Role:      role,
		Code:      code,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// MembershipWithShaadi bundles a membership with its event for listings.
type MembershipWithShaadi struct {
	Membership *Membership `json:"membership"`
	Shaadi     *Shaadi     `json:"shaadi"`
}

// ShaadiMember is a directory entry: a joined membership enriched with profile
// and invite fields for client-side search/filter/sort.
// swagger:model ShaadiMember
type ShaadiMember struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	ProfilePicURL string    `json:"profile_pic_url,omitempty"`
	Role          string    `json:"role"`
	Side          string    `json:"side,omitempty"`
	Relationship  string    `json:"relationship,omitempty"`
	Blocked       bool      `json:"blocked"`
	JoinedAt      time.Time `json:"joined_at"`
}

// MembershipRepository defines the interface for membership storage.
type MembershipRepository interface {
	// Create inserts the membership and sets membership.ID. Returns
	// ErrConflict when the join code is already taken.
	Create(ctx context.Context, m *Membership) error
	GetByCode(ctx context.Context, code string) (*Membership, error)
	GetByShaadiAndUser(ctx context.Context, shaadiID, userID string) (*Membership, error)
	ListByUserID(ctx context.Context, userID string) ([]*Membership, error)
	// ListMembersByShaadiID returns the contact directory: memberships joined
	// with user profiles and, where present, the invite that produced them.
	ListMembersByShaadiID(ctx context.Context, shaadiID string) ([]*ShaadiMember, error)
	SetBlocked(ctx context.Context, shaadiID, userID string, blocked bool) error
}
