package invitecode

import (
	"time"

	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/inbound"
)

func toCodeOutput(c *model.InvitationCode, now time.Time, withRedeemers bool) *inbound.InvitationCodeOutput {
	out := &inbound.InvitationCodeOutput{
		ID:             c.ID,
		Code:           c.Code,
		OrganizationID: c.OrganizationID,
		SportID:        c.SportID,
		TeamID:         c.TeamID,
		CreatedBy:      c.CreatedBy,
		ExpiresAt:      c.ExpiresAt,
		UsageLimit:     c.UsageLimit,
		UsedCount:      c.UsedCount,
		RemainingUses:  c.RemainingUses(),
		IsUsed:         c.IsUsed(),
		Status:         c.StatusAt(now),
		CreatedAt:      c.CreatedAt,
	}
	if withRedeemers {
		out.UsedBy = c.UsedBy()
	}
	return out
}

func toCodeOutputs(codes []*model.InvitationCode, now time.Time) []*inbound.InvitationCodeOutput {
	out := make([]*inbound.InvitationCodeOutput, 0, len(codes))
	for _, c := range codes {
		out = append(out, toCodeOutput(c, now, true))
	}
	return out
}
