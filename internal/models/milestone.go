// milestone.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Milestone records one memorable event for a kid, optionally linked to
// photos through the milestone_photos join table. Hard-deleted.
type Milestone struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	KidID         string    `gorm:"type:char(36);not null;index" json:"kid_id"`
	CreatedBy     string    `gorm:"type:char(36);not null;index" json:"created_by"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   *string   `gorm:"size:1024" json:"description"`
	MilestoneDate time.Time `gorm:"not null" json:"milestone_date"`
	Category      *string   `gorm:"size:64" json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Kid           *Kid      `gorm:"foreignKey:KidID" json:"kid,omitempty"`
	User          *User     `gorm:"foreignKey:CreatedBy" json:"user,omitempty"`
}

// BeforeCreate assigns a UUID primary key.
func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MilestonePhoto attaches one photo to one milestone; the pair is unique and
// duplicate attaches are tolerated by the attach loop.
type MilestonePhoto struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	MilestoneID string    `gorm:"type:char(36);not null;index:idx_milestone_photo,unique" json:"milestone_id"`
	PhotoID     string    `gorm:"type:char(36);not null;index:idx_milestone_photo,unique" json:"photo_id"`
	CreatedAt   time.Time `json:"-"`
}

// TableName overrides the table name for Milestone
func (Milestone) TableName() string {
	return "milestones"
}

// TableName overrides the table name for MilestonePhoto
func (MilestonePhoto) TableName() string {
	return "milestone_photos"
}
