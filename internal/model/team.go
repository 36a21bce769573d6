package model

import (
	"time"

	"github.com/google/uuid"
)

// Team is a league team. The membership subsystem never deletes teams.
type Team struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string     `json:"name" gorm:"not null"`
	SportID             uuid.UUID  `json:"sport_id" gorm:"type:uuid;not null"`
	LeagueID            uuid.UUID  `json:"league_id" gorm:"type:uuid;not null;index"`
	DivisionID          *uuid.UUID `json:"division_id,omitempty" gorm:"type:uuid"`
	IsLookingForPlayers bool       `json:"is_looking_for_players" gorm:"not null;default:false"`
	MinPlayersNeeded    int        `json:"min_players_needed" gorm:"not null;default:0"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// TeamPlayer links a player to a team.
type TeamPlayer struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:uniq_team_player"`
	PlayerID uuid.UUID `json:"player_id" gorm:"type:uuid;not null;uniqueIndex:uniq_team_player"`
	JoinedAt time.Time `json:"joined_at"`
}

// TableName returns the database table name.
func (TeamPlayer) TableName() string {
	return "team_players"
}

// TeamCaptain links a captain to a team.
type TeamCaptain struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:uniq_team_captain"`
	CaptainID uuid.UUID `json:"captain_id" gorm:"type:uuid;not null;uniqueIndex:uniq_team_captain"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (TeamCaptain) TableName() string {
	return "team_captains"
}
