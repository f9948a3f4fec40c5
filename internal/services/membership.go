package services

import (
	"context"
	"errors"
	"fmt"

	"shaadicircle/internal/domain"
)

// activeMembership resolves the caller's membership in the shaadi and rejects
// non-members and blocked members. Every event-scoped read/write goes through
// this check, so a blocked member is shut out even while their bearer token
// stays valid.
func activeMembership(ctx context.Context, repo domain.MembershipRepository, shaadiID, userID string) (*domain.Membership, error) {
	m, err := repo.GetByShaadiAndUser(ctx, shaadiID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if m.Blocked {
		return nil, domain.ErrMemberBlocked
	}
	return m, nil
}
