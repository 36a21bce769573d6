package model

import (
	"time"

	"github.com/google/uuid"
)

// CaptainRequestStatus represents the state of a captain promotion request.
type CaptainRequestStatus string

const (
	CaptainRequestStatusPending  CaptainRequestStatus = "PENDING"
	CaptainRequestStatusApproved CaptainRequestStatus = "APPROVED"
	CaptainRequestStatusRejected CaptainRequestStatus = "REJECTED"
)

// CaptainRequestSource tells who opened the request.
type CaptainRequestSource string

const (
	CaptainRequestSourcePlayer CaptainRequestSource = "PLAYER"
	CaptainRequestSourceAdmin  CaptainRequestSource = "ADMIN"
)

// CaptainRequest asks to promote a player to captain of a team.
type CaptainRequest struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlayerID        uuid.UUID            `json:"player_id" gorm:"type:uuid;not null;index"`
	TeamID          uuid.UUID            `json:"team_id" gorm:"type:uuid;not null"`
	LeagueID        uuid.UUID            `json:"league_id" gorm:"type:uuid;not null;index"`
	Status          CaptainRequestStatus `json:"status" gorm:"not null;default:PENDING"`
	Source          CaptainRequestSource `json:"source" gorm:"not null"`
	Message         string               `json:"message,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	ApprovedBy      *uuid.UUID           `json:"approved_by,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time            `json:"created_at"`
	RespondedAt     *time.Time           `json:"responded_at,omitempty"`

	// Relations (for response)
	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

// TableName returns the database table name.
func (CaptainRequest) TableName() string {
	return "captain_requests"
}

// IsPending returns true if the request is still pending.
func (r *CaptainRequest) IsPending() bool {
	return r.Status == CaptainRequestStatusPending
}
