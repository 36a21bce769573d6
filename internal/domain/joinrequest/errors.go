package joinrequest

import (
	"fmt"
	"time"

	"github.com/leaguehub/server/internal/domain/membership"
	apperrors "github.com/leaguehub/server/internal/utils/errors"
)

// Domain errors for the join request workflow.
var (
	ErrUserNotFound    = apperrors.Define(apperrors.ErrNotFound, "USER_NOT_FOUND", "user not found")
	ErrTeamNotFound    = apperrors.Define(apperrors.ErrNotFound, "TEAM_NOT_FOUND", "team not found")
	ErrRequestNotFound = apperrors.Define(apperrors.ErrNotFound, "JOIN_REQUEST_NOT_FOUND", "join request not found")

	ErrAlreadyMember     = membership.ErrAlreadyMember
	ErrDuplicatePending  = apperrors.Define(apperrors.ErrConflict, "DUPLICATE_PENDING", "a pending request for this team already exists")
	ErrRequestNotPending = apperrors.Define(apperrors.ErrInvalidState, "REQUEST_NOT_PENDING", "join request is no longer pending")
	ErrRateLimited       = apperrors.Define(apperrors.ErrRateLimited, "RATE_LIMITED", "too many join requests")

	ErrNotTeamCaptain = apperrors.Define(apperrors.ErrForbidden, "NOT_TEAM_CAPTAIN", "only a captain of this team can do this")
	ErrNotTeamManager = membership.ErrNotTeamManager
)

// RateLimitError reports how far over the join request limit a user is.
// It unwraps to an AppError matching ErrRateLimited that carries the numbers as details.
type RateLimitError struct {
	Count  int
	Limit  int
	Window time.Duration

	appErr *apperrors.AppError
}

// NewRateLimitError creates a RateLimitError.
func NewRateLimitError(count, limit int, window time.Duration) *RateLimitError {
	return &RateLimitError{
		Count:  count,
		Limit:  limit,
		Window: window,
		appErr: ErrRateLimited.WithDetails(map[string]any{
			"count":          count,
			"limit":          limit,
			"window":         window.String(),
			"window_seconds": int64(window.Seconds()),
		}),
	}
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many join requests: %d in the last %s (limit %d)", e.Count, e.Window, e.Limit)
}

// Unwrap returns the detailed AppError.
func (e *RateLimitError) Unwrap() error {
	return e.appErr
}
