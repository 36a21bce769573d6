package invitecode

import (
	"errors"

	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// Domain errors for the invitation code engine.
var (
	// Redemption errors
	ErrInvalidCode      = apperrors.Define(apperrors.ErrNotFound, "INVALID_CODE", "invitation code does not exist")
	ErrCodeExpired      = apperrors.Define(apperrors.ErrInvalidState, "EXPIRED", "invitation code has expired")
	ErrAlreadyUsed      = apperrors.Define(apperrors.ErrInvalidState, "ALREADY_USED", "invitation code has already been used")
	ErrLimitReached     = apperrors.Define(apperrors.ErrInvalidState, "LIMIT_REACHED", "invitation code usage limit reached")
	ErrAlreadyRedeemed  = apperrors.Define(apperrors.ErrConflict, "ALREADY_REDEEMED", "you have already redeemed this code")
	ErrRedeemContention = apperrors.Define(apperrors.ErrConflict, "REDEEM_CONFLICT", "invitation code is busy, try again")

	// Lookup errors
	ErrCodeNotFound   = apperrors.Define(apperrors.ErrNotFound, "CODE_NOT_FOUND", "invitation code not found")
	ErrLeagueNotFound = apperrors.Define(apperrors.ErrNotFound, "LEAGUE_NOT_FOUND", "league not found")
	ErrSportNotFound  = apperrors.Define(apperrors.ErrNotFound, "SPORT_NOT_FOUND", "sport not found")
	ErrTeamNotFound   = apperrors.Define(apperrors.ErrNotFound, "TEAM_NOT_FOUND", "team not found")
	ErrUserNotFound   = apperrors.Define(apperrors.ErrNotFound, "USER_NOT_FOUND", "user not found")

	// Generation errors
	ErrInvalidRequest       = apperrors.Define(apperrors.ErrBadRequest, "INVALID_REQUEST", "invalid request")
	ErrTeamNotInLeague      = apperrors.Define(apperrors.ErrBadRequest, "TEAM_NOT_IN_LEAGUE", "team does not belong to this league")
	ErrInvalidExpiry        = apperrors.Define(apperrors.ErrBadRequest, "INVALID_EXPIRY", "expiry must be in the future")
	ErrInvalidUsageLimit    = apperrors.Define(apperrors.ErrBadRequest, "INVALID_USAGE_LIMIT", "usage limit out of range")
	ErrCodeGenerationFailed = apperrors.Define(apperrors.ErrInternal, "CODE_GENERATION_FAILED", "could not generate a unique invitation code")

	// Permission errors
	ErrNotAllowed = apperrors.Define(apperrors.ErrForbidden, "NOT_ALLOWED", "you cannot manage invitation codes here")
)

// errUsageRace signals that the conditional usage increment matched no row.
var errUsageRace = errors.New("invitation code usage changed concurrently")
