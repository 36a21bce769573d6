package outbound

import (
	"errors"
	"fmt"
)

// Persistence errors shared by all database ports.
var (
	// ErrRecordNotFound is returned when a lookup matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Unique constraint names created by the migrations.
const (
	ConstraintInvitationCode        = "uniq_invitation_code"
	ConstraintCodeRedeemer          = "uniq_code_redeemer"
	ConstraintPendingJoinRequest    = "uniq_pending_join_request"
	ConstraintPendingCaptainRequest = "uniq_pending_captain_request"
	ConstraintPlayerUser            = "uniq_player_user"
	ConstraintCaptainUser           = "uniq_captain_user"
	ConstraintLeagueMember          = "uniq_league_member"
	ConstraintTeamPlayer            = "uniq_team_player"
	ConstraintTeamCaptain           = "uniq_team_captain"
)

// DuplicateError names the unique constraint an insert violated.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate record: %s", e.Constraint)
}

// Unwrap lets errors.Is match ErrDuplicate.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// IsDuplicateOn reports whether err is a unique violation of the given constraint.
// An empty constraint name on the error matches any constraint.
func IsDuplicateOn(err error, constraint string) bool {
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		return false
	}
	return dup.Constraint == "" || dup.Constraint == constraint
}
