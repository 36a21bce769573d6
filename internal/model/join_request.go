package model

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestStatus represents the state of a team join request.
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "PENDING"
	JoinRequestStatusApproved JoinRequestStatus = "APPROVED"
	JoinRequestStatusDeclined JoinRequestStatus = "DECLINED"
)

// TeamJoinRequest is a user's request to join a recruiting team.
type TeamJoinRequest struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	TeamID      uuid.UUID         `json:"team_id" gorm:"type:uuid;not null;index"`
	Message     string            `json:"message,omitempty"`
	Status      JoinRequestStatus `json:"status" gorm:"not null;default:PENDING"`
	RequestedAt time.Time         `json:"requested_at" gorm:"not null"`
	RespondedAt *time.Time        `json:"responded_at,omitempty"`

	// Relations (for response)
	Team *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the database table name.
func (TeamJoinRequest) TableName() string {
	return "team_join_requests"
}

// IsPending returns true if the request is still pending.
func (r *TeamJoinRequest) IsPending() bool {
	return r.Status == JoinRequestStatusPending
}

// IsStaleAt reports whether a pending request has outlived staleAfter at t.
func (r *TeamJoinRequest) IsStaleAt(t time.Time, staleAfter time.Duration) bool {
	return r.IsPending() && r.RequestedAt.Before(t.Add(-staleAfter))
}
