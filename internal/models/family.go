package models

import (
	"time"

	"github.com/google/uuid"
)

type FamilyGroup struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	InviteCode string    `gorm:"size:12;not null;uniqueIndex" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FamilyMember links a user to a family group. Membership is the sole
// authorization gate for family-scoped resources; the role column is stored
// but both roles currently carry the same permissions.
type FamilyMember struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_family_members_user_group" json:"user_id"`
	FamilyGroupID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_family_members_user_group;index" json:"family_group_id"`
	Role          string      `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt     time.Time   `json:"created_at"`
	User          User        `gorm:"foreignKey:UserID" json:"-"`
	FamilyGroup   FamilyGroup `gorm:"foreignKey:FamilyGroupID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
