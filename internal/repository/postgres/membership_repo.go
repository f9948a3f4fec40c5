package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"shaadicircle/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

// NewMembershipRepository returns a domain.MembershipRepository implemented with Postgres.
func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (shaadi_id, user_id, role, code, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.ShaadiID, m.UserID, m.Role, m.Code, m.Blocked, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *membershipRepository) GetByCode(ctx context.Context, code string) (*domain.Membership, error) {
	query := membershipSelect + ` WHERE code = $1`
	return scanMembership(r.DB.QueryRowContext(ctx, query, code))
}

func (r *membershipRepository) GetByShaadiAndUser(ctx context.Context, shaadiID, userID string) (*domain.Membership, error) {
	query := membershipSelect + ` WHERE shaadi_id = $1 AND user_id = $2`
	return scanMembership(r.DB.QueryRowContext(ctx, query, shaadiID, userID))
}

const membershipSelect = `
	SELECT id, shaadi_id, user_id, role, code, blocked, created_at, updated_at
	FROM memberships`

func scanMembership(row rowScanner) (*domain.Membership, error) {
	m := &domain.Membership{}
	err := row.Scan(&m.ID, &m.ShaadiID, &m.UserID, &m.Role, &m.Code, &m.Blocked, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Membership, error) {
	query := membershipSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]*domain.Membership, 0)
	for rows.Next() {
		m := &domain.Membership{}
		if err := rows.Scan(&m.ID, &m.ShaadiID, &m.UserID, &m.Role, &m.Code, &m.Blocked, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// ListMembersByShaadiID builds the contact directory. Side and relationship
// come from the invite that produced the membership, when there is one; the
// creator and directly-added members have no invite row.
func (r *membershipRepository) ListMembersByShaadiID(ctx context.Context, shaadiID string) ([]*domain.ShaadiMember, error) {
	query := `
		SELECT m.user_id, u.username, u.email, u.profile_pic_url, m.role, m.blocked, m.created_at,
		       i.side, i.relationship
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN invites i ON i.shaadi_id = m.shaadi_id AND i.joined_user_id = m.user_id
		WHERE m.shaadi_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, shaadiID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.ShaadiMember, 0)
	for rows.Next() {
		sm := &domain.ShaadiMember{}
		var picNull, sideNull, relNull sql.NullString
		if err := rows.Scan(&sm.UserID, &sm.Username, &sm.Email, &picNull, &sm.Role, &sm.Blocked, &sm.JoinedAt, &sideNull, &relNull); err != nil {
			return nil, err
		}
		if picNull.Valid {
			sm.ProfilePicURL = picNull.String
		}
		if sideNull.Valid {
			sm.Side = sideNull.String
		}
		if relNull.Valid {
			sm.Relationship = relNull.String
		}
		members = append(members, sm)
	}
	return members, rows.Err()
}

func (r *membershipRepository) SetBlocked(ctx context.Context, shaadiID, userID string, blocked bool) error {
	query := `
		UPDATE memberships SET blocked = $1, updated_at = NOW()
		WHERE shaadi_id = $2 AND user_id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, blocked, shaadiID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
