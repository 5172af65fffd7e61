// family.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamilyMember roles and statuses. Only an active membership grants access to
// family-scoped records; a pending invitation grants nothing.
const (
	FamilyRoleOwner  = "owner"
	FamilyRoleAdmin  = "admin"
	FamilyRoleMember = "member"

	MemberStatusPending = "pending"
	MemberStatusActive  = "active"
)

// Family groups users around shared kids and albums. Soft-deleted only; the
// owner always has a membership row with role=owner and can never be removed.
type Family struct {
	ID          string         `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"size:1024" json:"description"`
	AvatarURL   *string        `gorm:"size:512" json:"avatar_url"`
	OwnerID     string         `gorm:"type:char(36);not null;index" json:"owner_id"`
	Owner       *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsDeleted   bool           `gorm:"not null;default:false" json:"-"`
	DeletedAt   *time.Time     `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Members     []FamilyMember `gorm:"foreignKey:FamilyID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// BeforeCreate assigns a UUID primary key.
func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// FamilyMember is one (family, user) pair, unique per pair. Created pending on
// invite, flipped to active on accept, hard-deleted on removal or leave.
type FamilyMember struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	FamilyID  string    `gorm:"type:char(36);not null;index:idx_family_user,unique" json:"family_id"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_family_user,unique" json:"user_id"`
	Role      string    `gorm:"size:32;not null;default:member" json:"role"`
	Status    string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Family    *Family   `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
}

// BeforeCreate assigns a UUID primary key.
func (m *FamilyMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Family
func (Family) TableName() string {
	return "families"
}

// TableName overrides the table name for FamilyMember
func (FamilyMember) TableName() string {
	return "family_members"
}
