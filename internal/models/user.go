// user.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Admin bypasses the family access filter; everyone else is a
// plain family_member.
const (
	RoleAdmin        = "admin"
	RoleFamilyMember = "family_member"
)

// User represents an account. PasswordHash is nullable because OAuth accounts
// may not carry one. Users are soft-deleted only.
type User struct {
	ID           string     `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	DisplayName  string     `gorm:"size:255;not null" json:"display_name"`
	AvatarURL    *string    `gorm:"size:512" json:"avatar_url"`
	Role         string     `gorm:"size:32;not null;default:family_member" json:"role"`
	Language     string     `gorm:"size:8;not null;default:vi" json:"language"`
	IsDeleted    bool       `gorm:"not null;default:false" json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ResetToken   *string    `gorm:"size:64;index" json:"-"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicUser is the trimmed user shape embedded in other resources.
type PublicUser struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email,omitempty"`
	AvatarURL   *string `json:"avatar_url"`
}

// Public trims a user down to the fields other members may see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
	}
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
