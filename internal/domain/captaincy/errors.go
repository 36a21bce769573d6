package captaincy

import apperrors "github.com/leaguehub/server/internal/utils/errors"

// Domain errors for the captain promotion workflow.
var (
	// Lookup errors
	ErrUserNotFound    = apperrors.Define(apperrors.ErrNotFound, "USER_NOT_FOUND", "user not found")
	ErrPlayerNotFound  = apperrors.Define(apperrors.ErrNotFound, "PLAYER_NOT_FOUND", "player not found")
	ErrLeagueNotFound  = apperrors.Define(apperrors.ErrNotFound, "LEAGUE_NOT_FOUND", "league not found")
	ErrTeamNotFound    = apperrors.Define(apperrors.ErrNotFound, "TEAM_NOT_FOUND", "team not found")
	ErrRequestNotFound = apperrors.Define(apperrors.ErrNotFound, "CAPTAIN_REQUEST_NOT_FOUND", "captain request not found")

	// Request errors
	ErrInvalidRequest    = apperrors.Define(apperrors.ErrBadRequest, "INVALID_REQUEST", "invalid request")
	ErrTeamNotInLeague   = apperrors.Define(apperrors.ErrBadRequest, "TEAM_NOT_IN_LEAGUE", "team does not belong to this league")
	ErrAlreadyCaptain    = apperrors.Define(apperrors.ErrConflict, "ALREADY_CAPTAIN", "player is already a captain")
	ErrDuplicatePending  = apperrors.Define(apperrors.ErrConflict, "DUPLICATE_PENDING", "a pending captain request for this league already exists")
	ErrRequestNotPending = apperrors.Define(apperrors.ErrInvalidState, "REQUEST_NOT_PENDING", "captain request is no longer pending")

	// Permission errors
	ErrNotPlayerOwner = apperrors.Define(apperrors.ErrForbidden, "NOT_PLAYER_OWNER", "you can only request captaincy for yourself")
	ErrAdminRequired  = apperrors.Define(apperrors.ErrForbidden, "ADMIN_REQUIRED", "only a league admin can do this")
	ErrNotAllowed     = apperrors.Define(apperrors.ErrForbidden, "NOT_ALLOWED", "you cannot respond to this captain request")
)
