// kid.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kid is a child profile. Hard-deleted by its creator or an admin, cascading
// albums, photos, milestones and growth entries.
type Kid struct {
	ID             string        `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedBy      string        `gorm:"type:char(36);not null;index" json:"created_by"`
	FamilyID       *string       `gorm:"type:char(36);index" json:"family_id"`
	Name           string        `gorm:"size:255;not null" json:"name"`
	DateOfBirth    time.Time     `gorm:"not null" json:"date_of_birth"`
	Gender         *string       `gorm:"size:16" json:"gender"`
	Bio            *string       `gorm:"size:1024" json:"bio"`
	ProfilePicture *string       `gorm:"size:512" json:"profile_picture"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Family         *Family       `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	GrowthEntries  []GrowthEntry `gorm:"foreignKey:KidID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key.
func (k *Kid) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}

// GrowthEntry is one row of a kid's growth log. The history reads newest
// first regardless of insertion order.
type GrowthEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	KidID     string    `gorm:"type:char(36);not null;index" json:"-"`
	Date      time.Time `gorm:"not null" json:"date"`
	Height    *float64  `json:"height"`
	Weight    *float64  `json:"weight"`
	Note      *string   `gorm:"size:512" json:"note"`
	CreatedAt time.Time `json:"-"`
}

// TableName overrides the table name for Kid
func (Kid) TableName() string {
	return "kids"
}

// TableName overrides the table name for GrowthEntry
func (GrowthEntry) TableName() string {
	return "growth_entries"
}
