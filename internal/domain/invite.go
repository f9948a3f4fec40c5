package domain

import (
	"context"
	"errors"
	"time"
)

// Invite statuses. Forward-only except expired, which is derived from
// expires_at at read time rather than written by any actor.
const (
	InviteStatusPending  = "pending"
	InviteStatusSent     = "sent"
	InviteStatusJoined   = "joined"
	InviteStatusDeclined = "declined"
	InviteStatusExpired  = "expired"
)

// Guest sides.
const (
	SideGroom = "groom"
	SideBride = "bride"
)

// ErrInviteNotJoinable is returned when joining or declining an invite that is
// no longer pending or sent.
var ErrInviteNotJoinable = errors.New("invite is not open for joining")

// Invite is an outreach to a prospective guest, distinct from a Membership
// until the guest joins.
// swagger:model Invite
type Invite struct {
	ID               string     `json:"id"`
	ShaadiID         string     `json:"shaadi_id"`
	GuestName        string     `json:"guest_name,omitempty"`
	GuestEmail       string     `json:"guest_email,omitempty"`
	GuestPhone       string     `json:"guest_phone,omitempty"`
	Relationship     string     `json:"relationship,omitempty"`
	Side             string     `json:"side,omitempty"`
	Status           string     `json:"status"`
	InviteCode       string     `json:"invite_code"`
	InviteLink       string     `json:"invite_link"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
	JoinedAt         *time.Time `json:"joined_at,omitempty"`
	DeclinedAt       *time.Time `json:"declined_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	JoinedUserID     *string    `json:"joined_user_id,omitempty"`
	OpenCount        int        `json:"open_count"`
	ClickCount       int        `json:"click_count"`
	ReminderCount    int        `json:"reminder_count"`
	LastReminderSent *time.Time `json:"last_reminder_sent,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// EffectiveStatus returns the stored status, or expired when a pending/sent
// invite has passed its expiry.
func (i *Invite) EffectiveStatus(now time.Time) string {
	if (i.Status == InviteStatusPending || i.Status == InviteStatusSent) &&
		i.ExpiresAt != nil && now.After(*i.ExpiresAt) {
		return InviteStatusExpired
	}
	return i.Status
}

// Joinable reports whether the invite can still be joined or declined.
func (i *Invite) Joinable(now time.Time) bool {
	s := i.EffectiveStatus(now)
	return s == InviteStatusPending || s == InviteStatusSent
}

// GuestStats aggregates invite counts by effective status for the dashboard.
// swagger:model GuestStats
type GuestStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Sent     int `json:"sent"`
	Joined   int `json:"joined"`
	Declined int `json:"declined"`
	Expired  int `json:"expired"`
}

// InviteRepository defines the interface for invite storage.
type InviteRepository interface {
	Create(ctx context.Context, inv *Invite) error
	GetByID(ctx context.Context, id string) (*Invite, error)
	GetByCode(ctx context.Context, code string) (*Invite, error)
	ListByShaadiID(ctx context.Context, shaadiID string) ([]*Invite, error)
	Delete(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string, at time.Time) error
	MarkDeclined(ctx context.Context, id string, at time.Time) error
	BumpReminder(ctx context.Context, id string, at time.Time) error
	// Join marks the invite joined and inserts the guest membership in one
	// transaction, setting membership.ID.
	Join(ctx context.Context, inviteID, userID string, membership *Membership, at time.Time) error
	// IncrementOpen and IncrementClick are best-effort tracking counters.
	IncrementOpen(ctx context.Context, code string) error
	IncrementClick(ctx context.Context, code string) error
}

// CreateInviteInput holds the creator-supplied invite fields. Email or phone
// is required; the full guest profile is deferred until the guest joins.
type CreateInviteInput struct {
	GuestName    string
	GuestEmail   string
	GuestPhone   string
	Relationship string
	Side         string
	Notes        string
}

// InviteService defines the invite lifecycle and guest dashboard logic.
type InviteService interface {
	CreateInvite(ctx context.Context, shaadiID, callerID string, input CreateInviteInput) (*Invite, error)
	ListInvites(ctx context.Context, shaadiID, callerID string) ([]*Invite, error)
	// SendInvite transitions pending -> sent and emails the guest.
	SendInvite(ctx context.Context, inviteID, callerID string) (*Invite, error)
	// ResendInvite bumps the reminder counter and re-emails the guest without
	// changing the status.
	ResendInvite(ctx context.Context, inviteID, callerID string) (*Invite, error)
	DeleteInvite(ctx context.Context, inviteID, callerID string) error
	// DeclineInvite marks a live invite declined. Code-gated, no auth.
	DeclineInvite(ctx context.Context, code string) error
	// TrackOpen and TrackClick swallow storage errors: tracking must never
	// fail the guest's navigation.
	TrackOpen(ctx context.Context, code string)
	TrackClick(ctx context.Context, code string)
	GetGuestStats(ctx context.Context, shaadiID, callerID string) (*GuestStats, error)
	GetShaadiMembers(ctx context.Context, shaadiID, callerID string) ([]*ShaadiMember, error)
}
