package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the coarse role cached on the identity record.
type UserRole string

const (
	UserRolePlayer  UserRole = "PLAYER"
	UserRoleCaptain UserRole = "CAPTAIN"
	UserRoleAdmin   UserRole = "ADMIN"
)

// User is the identity record owned by the surrounding application.
// The membership subsystem reads it and writes only CurrentOrganizationID and Role.
type User struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email                 string     `json:"email" gorm:"uniqueIndex;not null"`
	Name                  string     `json:"name" gorm:"not null"`
	Role                  UserRole   `json:"role" gorm:"not null;default:PLAYER"`
	CurrentOrganizationID *uuid.UUID `json:"current_organization_id,omitempty" gorm:"type:uuid;column:current_organization_id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true if the user administers leagues.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
