package model

import (
	"time"

	"github.com/google/uuid"
)

// Player is the playing profile of a user. At most one exists per user.
type Player struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Player) TableName() string {
	return "players"
}

// Captain grants team-leadership capability to a user.
// It is created only by an approved promotion and outlives team membership.
type Captain struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Captain) TableName() string {
	return "captains"
}
