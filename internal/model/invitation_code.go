package model

import (
	"time"

	"github.com/google/uuid"
)

// InvitationCodeStatus is the derived state of a code. It is never stored.
type InvitationCodeStatus string

const (
	InvitationCodeStatusActive    InvitationCodeStatus = "ACTIVE"
	InvitationCodeStatusExpired   InvitationCodeStatus = "EXPIRED"
	InvitationCodeStatusExhausted InvitationCodeStatus = "EXHAUSTED"
)

// InvitationCode grants membership in a league/sport (and optionally a team).
type InvitationCode struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code           string     `json:"code" gorm:"size:32;uniqueIndex;not null"`
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index"`
	SportID        uuid.UUID  `json:"sport_id" gorm:"type:uuid;not null"`
	TeamID         *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid"`
	CreatedBy      uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	UsageLimit     int        `json:"usage_limit" gorm:"not null;default:1"`
	UsedCount      int        `json:"used_count" gorm:"not null;default:0"`
	CreatedAt      time.Time  `json:"created_at"`

	// Redemptions in redemption order (loaded on demand)
	Redemptions []InvitationCodeRedemption `json:"-" gorm:"foreignKey:CodeID"`
}

// TableName returns the database table name.
func (InvitationCode) TableName() string {
	return "invitation_codes"
}

// IsExpiredAt reports whether the code had expired at t.
func (c *InvitationCode) IsExpiredAt(t time.Time) bool {
	return c.ExpiresAt != nil && !t.Before(*c.ExpiresAt)
}

// IsExhausted reports whether every allowed redemption has been used.
func (c *InvitationCode) IsExhausted() bool {
	return c.UsedCount >= c.UsageLimit
}

// IsUsed is the legacy flag, derived from the usage counter.
func (c *InvitationCode) IsUsed() bool {
	return c.IsExhausted()
}

// RemainingUses returns how many redemptions are left.
func (c *InvitationCode) RemainingUses() int {
	if n := c.UsageLimit - c.UsedCount; n > 0 {
		return n
	}
	return 0
}

// StatusAt returns the derived status at t. Exhaustion wins over expiry.
func (c *InvitationCode) StatusAt(t time.Time) InvitationCodeStatus {
	switch {
	case c.IsExhausted():
		return InvitationCodeStatusExhausted
	case c.IsExpiredAt(t):
		return InvitationCodeStatusExpired
	default:
		return InvitationCodeStatusActive
	}
}

// UsedBy returns redeemer user IDs in redemption order.
func (c *InvitationCode) UsedBy() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Redemptions))
	for _, r := range c.Redemptions {
		ids = append(ids, r.UserID)
	}
	return ids
}

// InvitationCodeRedemption records one successful redemption.
type InvitationCodeRedemption struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodeID     uuid.UUID `json:"code_id" gorm:"type:uuid;not null;uniqueIndex:uniq_code_redeemer"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:uniq_code_redeemer"`
	RedeemedAt time.Time `json:"redeemed_at" gorm:"not null"`
}

// TableName returns the database table name.
func (InvitationCodeRedemption) TableName() string {
	return "invitation_code_redemptions"
}
