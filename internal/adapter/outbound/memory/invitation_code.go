package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/outbound"
)

// InvitationCodeStore implements outbound.InvitationCodeDatabasePort.
type InvitationCodeStore struct{ s *Store }

func (c *InvitationCodeStore) Create(ctx context.Context, code *model.InvitationCode) error {
	defer c.s.lockWrite(ctx)()
	for _, existing := range c.s.st.codes {
		if existing.Code == code.Code {
			return &outbound.DuplicateError{Constraint: outbound.ConstraintInvitationCode}
		}
	}
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = nowUTC()
	}
	stored := *code
	stored.Redemptions = nil
	c.s.st.codes[code.ID] = stored
	return nil
}

func (c *InvitationCodeStore) FindByID(ctx context.Context, id uuid.UUID) (*model.InvitationCode, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	code, ok := c.s.st.codes[id]
	if !ok {
		return nil, outbound.ErrRecordNotFound
	}
	code.Redemptions = c.redemptionsLocked(id)
	return &code, nil
}

func (c *InvitationCodeStore) FindByCode(ctx context.Context, value string) (*model.InvitationCode, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for id, code := range c.s.st.codes {
		if code.Code == value {
			code.Redemptions = c.redemptionsLocked(id)
			return &code, nil
		}
	}
	return nil, outbound.ErrRecordNotFound
}

func (c *InvitationCodeStore) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*model.InvitationCode, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var codes []*model.InvitationCode
	for id, code := range c.s.st.codes {
		if code.OrganizationID != organizationID {
			continue
		}
		code.Redemptions = c.redemptionsLocked(id)
		codes = append(codes, &code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i].CreatedAt.After(codes[j].CreatedAt)
	})
	return page(codes, limit, offset), nil
}

func (c *InvitationCodeStore) Delete(ctx context.Context, id uuid.UUID) error {
	defer c.s.lockWrite(ctx)()
	if _, ok := c.s.st.codes[id]; !ok {
		return outbound.ErrRecordNotFound
	}
	delete(c.s.st.codes, id)
	kept := c.s.st.redemptions[:0]
	for _, r := range c.s.st.redemptions {
		if r.CodeID != id {
			kept = append(kept, r)
		}
	}
	c.s.st.redemptions = kept
	return nil
}

func (c *InvitationCodeStore) IncrementUsage(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	defer c.s.lockWrite(ctx)()
	code, ok := c.s.st.codes[id]
	if !ok || code.IsExhausted() || code.IsExpiredAt(now) {
		return false, nil
	}
	code.UsedCount++
	c.s.st.codes[id] = code
	return true, nil
}

func (c *InvitationCodeStore) AddRedemption(ctx context.Context, redemption *model.InvitationCodeRedemption) error {
	defer c.s.lockWrite(ctx)()
	for _, r := range c.s.st.redemptions {
		if r.CodeID == redemption.CodeID && r.UserID == redemption.UserID {
			return &outbound.DuplicateError{Constraint: outbound.ConstraintCodeRedeemer}
		}
	}
	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}
	c.s.st.redemptions = append(c.s.st.redemptions, *redemption)
	return nil
}

func (c *InvitationCodeStore) redemptionsLocked(codeID uuid.UUID) []model.InvitationCodeRedemption {
	var out []model.InvitationCodeRedemption
	for _, r := range c.s.st.redemptions {
		if r.CodeID == codeID {
			out = append(out, r)
		}
	}
	return out
}
