package joinrequest

import (
	"github.com/leaguehub/server/internal/model"
	"github.com/leaguehub/server/internal/port/inbound"
)

func toJoinRequestOutput(r *model.TeamJoinRequest) *inbound.JoinRequestOutput {
	out := &inbound.JoinRequestOutput{
		ID:          r.ID,
		UserID:      r.UserID,
		TeamID:      r.TeamID,
		Message:     r.Message,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
		RespondedAt: r.RespondedAt,
	}
	if r.Team != nil {
		out.TeamName = r.Team.Name
	}
	if r.User != nil {
		out.UserName = r.User.Name
		out.UserEmail = r.User.Email
	}
	return out
}

func toJoinRequestOutputs(requests []*model.TeamJoinRequest) []*inbound.JoinRequestOutput {
	out := make([]*inbound.JoinRequestOutput, 0, len(requests))
	for _, r := range requests {
		out = append(out, toJoinRequestOutput(r))
	}
	return out
}

func toRecruitingTeamOutputs(teams []*model.Team) []*inbound.RecruitingTeamOutput {
	out := make([]*inbound.RecruitingTeamOutput, 0, len(teams))
	for _, t := range teams {
		out = append(out, &inbound.RecruitingTeamOutput{
			ID:               t.ID,
			Name:             t.Name,
			SportID:          t.SportID,
			LeagueID:         t.LeagueID,
			DivisionID:       t.DivisionID,
			MinPlayersNeeded: t.MinPlayersNeeded,
		})
	}
	return out
}
