package captaincy

import (
	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/inbound"
)

func toRequestOutput(r *model.CaptainRequest) *inbound.CaptainRequestOutput {
	out := &inbound.CaptainRequestOutput{
		ID:              r.ID,
		PlayerID:        r.PlayerID,
		TeamID:          r.TeamID,
		LeagueID:        r.LeagueID,
		Status:          r.Status,
		Source:          r.Source,
		Message:         r.Message,
		RejectionReason: r.RejectionReason,
		ApprovedBy:      r.ApprovedBy,
		CreatedAt:       r.CreatedAt,
		RespondedAt:     r.RespondedAt,
	}
	if r.Player != nil {
		userID := r.Player.UserID
		out.UserID = &userID
	}
	return out
}

func toRequestOutputs(requests []*model.CaptainRequest) []*inbound.CaptainRequestOutput {
	out := make([]*inbound.CaptainRequestOutput, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestOutput(r))
	}
	return out
}
