// album.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Album privacy levels.
const (
	PrivacyPrivate = "private"
	PrivacyFamily  = "family"
	PrivacyPublic  = "public"
)

// Album owns photos and optionally references a kid and a family. Deleting an
// album is a hard delete cascading photos and its share; the is_deleted flag
// additionally gates photo queries for behavior parity with older paths.
type Album struct {
	ID            string     `gorm:"type:char(36);primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   *string    `gorm:"size:1024" json:"description"`
	CreatedBy     string     `gorm:"type:char(36);not null;index" json:"created_by"`
	KidID         *string    `gorm:"type:char(36);index" json:"kid_id"`
	FamilyID      *string    `gorm:"type:char(36);index" json:"family_id"`
	PrivacyLevel  string     `gorm:"size:16;not null;default:private" json:"privacy_level"`
	CoverPhotoURL *string    `gorm:"size:512" json:"cover_photo_url"`
	Tags          StringList `json:"tags"`
	IsDeleted     bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Kid           *Kid       `gorm:"foreignKey:KidID" json:"kid,omitempty"`
	Family        *Family    `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Photos        []Photo    `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key.
func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Share is the one public capability per album: a random token, an optional
// bcrypt password hash, an optional expiry. Re-sharing replaces the token in
// place, so old links die immediately.
type Share struct {
	ID           string     `gorm:"type:char(36);primaryKey" json:"id"`
	AlbumID      string     `gorm:"type:char(36);not null;uniqueIndex" json:"album_id"`
	SharedBy     string     `gorm:"type:char(36);not null" json:"shared_by"`
	ShareToken   string     `gorm:"size:64;not null;uniqueIndex" json:"share_token"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key.
func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Album
func (Album) TableName() string {
	return "albums"
}

// TableName overrides the table name for Share
func (Share) TableName() string {
	return "shares"
}
