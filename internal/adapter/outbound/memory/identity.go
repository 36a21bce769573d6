package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// IdentityStore implements outbound.IdentityPort.
type IdentityStore struct{ s *Store }

func (i *IdentityStore) ResolveUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	u, ok := i.s.st.users[userID]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	return &u, nil
}

func (i *IdentityStore) SetCurrentOrganization(ctx context.Context, userID, organizationID uuid.UUID) error {
	defer i.s.lockWrite(ctx)()
	u, ok := i.s.st.users[userID]
	if !ok {
		return outbound.ErrRecordNotFound
	}
	u.CurrentOrganizationID = ptr(organizationID)
	u.UpdatedAt = nowUTC()
	i.s.st.users[userID] = u
	return nil
}

func (i *IdentityStore) SetRole(ctx context.Context, userID uuid.UUID, role model.UserRole) error {
	defer i.s.lockWrite(ctx)()
	u, ok := i.s.st.users[userID]
	if !ok {
		return outbound.ErrRecordNotFound
	}
	u.Role = role
	u.UpdatedAt = nowUTC()
	i.s.st.users[userID] = u
	return nil
}
