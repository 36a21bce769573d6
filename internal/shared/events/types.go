package events

import "github.com/google/uuid"

// Membership event type constants.
const (
	InvitationCodeRedeemedType = "InvitationCodeRedeemed"
	JoinRequestCreatedType     = "JoinRequestCreated"
	JoinRequestApprovedType    = "JoinRequestApproved"
	JoinRequestDeclinedType    = "JoinRequestDeclined"
	CaptainRequestCreatedType  = "CaptainRequestCreated"
	CaptainRequestApprovedType = "CaptainRequestApproved"
	CaptainRequestRejectedType = "CaptainRequestRejected"
)

// Aggregate names.
const (
	AggregateInvitationCode  = "InvitationCode"
	AggregateTeamJoinRequest = "TeamJoinRequest"
	AggregateCaptainRequest  = "CaptainRequest"
)

// MembershipEventTypes lists every event type the membership workflows emit.
func MembershipEventTypes() []string {
	return []string{
		InvitationCodeRedeemedType,
		JoinRequestCreatedType,
		JoinRequestApprovedType,
		JoinRequestDeclinedType,
		CaptainRequestCreatedType,
		CaptainRequestApprovedType,
		CaptainRequestRejectedType,
	}
}

// InvitationCodeRedeemedEvent is emitted after a code redemption commits.
type InvitationCodeRedeemedEvent struct {
	Metadata

	Code           string     `json:"code"`
	UserID         uuid.UUID  `json:"user_id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	SportID        uuid.UUID  `json:"sport_id"`
	TeamID         *uuid.UUID `json:"team_id,omitempty"`
}

// NewInvitationCodeRedeemedEvent creates a new InvitationCodeRedeemedEvent.
// The creator of the code is notified.
func NewInvitationCodeRedeemedEvent(codeID, creatorID uuid.UUID, code string, userID, organizationID, sportID uuid.UUID, teamID *uuid.UUID) *InvitationCodeRedeemedEvent {
	return &InvitationCodeRedeemedEvent{
		Metadata:       NewMetadata(InvitationCodeRedeemedType, codeID, AggregateInvitationCode, creatorID),
		Code:           code,
		UserID:         userID,
		OrganizationID: organizationID,
		SportID:        sportID,
		TeamID:         teamID,
	}
}

// JoinRequestEvent is emitted on every join request transition.
type JoinRequestEvent struct {
	Metadata

	UserID   uuid.UUID `json:"user_id"`
	TeamID   uuid.UUID `json:"team_id"`
	TeamName string    `json:"team_name,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// NewJoinRequestEvent creates a new JoinRequestEvent of the given type.
// recipient is the user who should hear about the transition.
func NewJoinRequestEvent(eventType string, requestID, recipient, userID, teamID uuid.UUID, teamName string) *JoinRequestEvent {
	return &JoinRequestEvent{
		Metadata: NewMetadata(eventType, requestID, AggregateTeamJoinRequest, recipient),
		UserID:   userID,
		TeamID:   teamID,
		TeamName: teamName,
	}
}

// CaptainRequestEvent is emitted on every captain request transition.
type CaptainRequestEvent struct {
	Metadata

	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
	LeagueID uuid.UUID `json:"league_id"`
	Source   string    `json:"source"`
	Reason   string    `json:"reason,omitempty"`
}

// NewCaptainRequestEvent creates a new CaptainRequestEvent of the given type.
func NewCaptainRequestEvent(eventType string, requestID, recipient, playerID, teamID, leagueID uuid.UUID, source string) *CaptainRequestEvent {
	return &CaptainRequestEvent{
		Metadata: NewMetadata(eventType, requestID, AggregateCaptainRequest, recipient),
		PlayerID: playerID,
		TeamID:   teamID,
		LeagueID: leagueID,
		Source:   source,
	}
}
