// comment.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment threads on a photo via the self-referential parent reference.
// Soft-deleted so replies stay attached.
type Comment struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	PhotoID         string    `gorm:"type:char(36);not null;index" json:"photo_id"`
	UserID          string    `gorm:"type:char(36);not null;index" json:"user_id"`
	Content         string    `gorm:"size:2048;not null" json:"content"`
	ParentCommentID *string   `gorm:"type:char(36);index" json:"parent_comment_id"`
	IsDeleted       bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate assigns a UUID primary key.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
