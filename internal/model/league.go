package model

import (
	"time"

	"github.com/google/uuid"
)

// League is the top-level organization grouping teams and sports.
type League struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (League) TableName() string {
	return "leagues"
}

// Sport is a sport played within leagues.
type Sport struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `json:"name" gorm:"uniqueIndex;not null"`
}

// TableName returns the database table name.
func (Sport) TableName() string {
	return "sports"
}

// LeagueMember links a user to a league.
type LeagueMember struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeagueID uuid.UUID `json:"league_id" gorm:"type:uuid;not null;uniqueIndex:uniq_league_member"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:uniq_league_member"`
	JoinedAt time.Time `json:"joined_at"`
}

// TableName returns the database table name.
func (LeagueMember) TableName() string {
	return "league_members"
}
