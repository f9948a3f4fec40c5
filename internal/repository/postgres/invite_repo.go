package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"shaadicircle/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

// NewInviteRepository returns a domain.InviteRepository implemented with Postgres.
func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO invites (shaadi_id, guest_name, guest_email, guest_phone, relationship, side,
			status, invite_code, invite_link, expires_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.ShaadiID, inv.GuestName, inv.GuestEmail, inv.GuestPhone, inv.Relationship, inv.Side,
		inv.Status, inv.InviteCode, inv.InviteLink, inv.ExpiresAt, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
}

const inviteSelect = `
	SELECT id, shaadi_id, guest_name, guest_email, guest_phone, relationship, side,
	       status, invite_code, invite_link, sent_at, joined_at, declined_at, expires_at,
	       joined_user_id, open_count, click_count, reminder_count, last_reminder_sent,
	       notes, created_at, updated_at
	FROM invites`

func scanInvite(row rowScanner) (*domain.Invite, error) {
	inv := &domain.Invite{}
	var nameNull, emailNull, phoneNull, relNull, sideNull, notesNull, joinedUserNull sql.NullString
	var sentNull, joinedNull, declinedNull, expiresNull, reminderNull sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.ShaadiID, &nameNull, &emailNull, &phoneNull, &relNull, &sideNull,
		&inv.Status, &inv.InviteCode, &inv.InviteLink, &sentNull, &joinedNull, &declinedNull, &expiresNull,
		&joinedUserNull, &inv.OpenCount, &inv.ClickCount, &inv.ReminderCount, &reminderNull,
		&notesNull, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if nameNull.Valid {
		inv.GuestName = nameNull.String
	}
	if emailNull.Valid {
		inv.GuestEmail = emailNull.String
	}
	if phoneNull.Valid {
		inv.GuestPhone = phoneNull.String
	}
	if relNull.Valid {
		inv.Relationship = relNull.String
	}
	if sideNull.Valid {
		inv.Side = sideNull.String
	}
	if notesNull.Valid {
		inv.Notes = notesNull.String
	}
	if joinedUserNull.Valid {
		inv.JoinedUserID = &joinedUserNull.String
	}
	if sentNull.Valid {
		inv.SentAt = &sentNull.Time
	}
	if joinedNull.Valid {
		inv.JoinedAt = &joinedNull.Time
	}
	if declinedNull.Valid {
		inv.DeclinedAt = &declinedNull.Time
	}
	if expiresNull.Valid {
		inv.ExpiresAt = &expiresNull.Time
	}
	if reminderNull.Valid {
		inv.LastReminderSent = &reminderNull.Time
	}
	return inv, nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	return scanInvite(r.DB.QueryRowContext(ctx, inviteSelect+` WHERE id = $1`, id))
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	return scanInvite(r.DB.QueryRowContext(ctx, inviteSelect+` WHERE invite_code = $1`, code))
}

func (r *inviteRepository) ListByShaadiID(ctx context.Context, shaadiID string) ([]*domain.Invite, error) {
	rows, err := r.DB.QueryContext(ctx, inviteSelect+` WHERE shaadi_id = $1 ORDER BY created_at DESC`, shaadiID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]*domain.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *inviteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inviteRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE invites SET status = $1, sent_at = $2, updated_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, query, domain.InviteStatusSent, at, id)
}

func (r *inviteRepository) MarkDeclined(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE invites SET status = $1, declined_at = $2, updated_at = $2
		WHERE id = $3
	`
	return r.exec(ctx, query, domain.InviteStatusDeclined, at, id)
}

func (r *inviteRepository) BumpReminder(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE invites SET reminder_count = reminder_count + 1, last_reminder_sent = $1, updated_at = $1
		WHERE id = $2
	`
	return r.exec(ctx, query, at, id)
}

// Join marks the invite joined and inserts the guest membership in a single
// transaction, closing the orphaned-join gap between the two writes.
func (r *inviteRepository) Join(ctx context.Context, inviteID, userID string, m *domain.Membership, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	inviteQuery := `
		UPDATE invites SET status = $1, joined_at = $2, joined_user_id = $3, updated_at = $2
		WHERE id = $4
	`
	result, err := tx.ExecContext(ctx, inviteQuery, domain.InviteStatusJoined, at, userID, inviteID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	memberQuery := `
		INSERT INTO memberships (shaadi_id, user_id, role, code, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, memberQuery,
		m.ShaadiID, m.UserID, m.Role, m.Code, m.Blocked, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}

	return tx.Commit()
}

func (r *inviteRepository) IncrementOpen(ctx context.Context, code string) error {
	query := `UPDATE invites SET open_count = open_count + 1, updated_at = NOW() WHERE invite_code = $1`
	_, err := r.DB.ExecContext(ctx, query, code)
	return err
}

func (r *inviteRepository) IncrementClick(ctx context.Context, code string) error {
	query := `UPDATE invites SET click_count = click_count + 1, updated_at = NOW() WHERE invite_code = $1`
	_, err := r.DB.ExecContext(ctx, query, code)
	return err
}

func (r *inviteRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
