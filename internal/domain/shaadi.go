package domain

import (
	"context"
	"time"
)

// Shaadi represents a wedding event: the tenant-scoping unit for all content.
// swagger:model Shaadi
type Shaadi struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BrideName string    `json:"bride_name"`
	GroomName string    `json:"groom_name"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewShaadi returns a new Shaadi with the given fields. ID is typically set by the repository on create.
func NewShaadi(name, brideName, groomName string, date time.Time, location, image, createdBy string, createdAt, updatedAt time.Time) *Shaadi {
	return &Shaadi{
		Name:      name,
		BrideName: brideName,
		GroomName: groomName,
		Date:      date,
		Location:  location,
		Image:     image,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ShaadiRepository defines the interface for shaadi storage.
type ShaadiRepository interface {
	// Create inserts the shaadi and the creator's membership in one
	// transaction, setting both IDs.
	Create(ctx context.Context, shaadi *Shaadi, creator *Membership) error
	GetByID(ctx context.Context, id string) (*Shaadi, error)
	// Delete removes the shaadi and cascades to its memberships, invites,
	// posts, and comments in one transaction.
	Delete(ctx context.Context, id string) error
}

// CreateShaadiInput holds the creator-supplied event fields.
type CreateShaadiInput struct {
	Name      string
	BrideName string
	GroomName string
	Date      time.Time
	Location  string
	Image     string
}

// ShaadiService defines event and membership management logic.
type ShaadiService interface {
	// CreateShaadi creates the event plus the creator membership with a fresh
	// join code, and returns both.
	CreateShaadi(ctx context.Context, creatorID string, input CreateShaadiInput) (*Shaadi, *Membership, error)
	// ListForUser returns every membership the user holds, paired with its
	// shaadi.
	ListForUser(ctx context.Context, userID string) ([]*MembershipWithShaadi, error)
	// Switch resolves a membership by join code for the calling user. Returns
	// ErrUnauthorized when the code is unknown, blocked, or belongs to
	// someone else. Mutates nothing.
	Switch(ctx context.Context, userID, code string) (*Shaadi, string, error)
	// SetMemberBlocked flips the blocked flag on a member. Creator only.
	SetMemberBlocked(ctx context.Context, shaadiID, callerID, memberUserID string, blocked bool) error
	// DeleteShaadi cascade-deletes the event and all its content. Creator only.
	DeleteShaadi(ctx context.Context, shaadiID, callerID, reason string) error
}
