package membership

import (
	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// Domain errors for the membership ledger.
var (
	ErrAlreadyMember  = apperrors.Define(apperrors.ErrConflict, "ALREADY_MEMBER", "player is already on this team")
	ErrNotTeamManager = apperrors.Define(apperrors.ErrForbidden, "NOT_TEAM_MANAGER", "only a team captain or league admin can do this")
)
