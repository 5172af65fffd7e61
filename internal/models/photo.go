// photo.go
//
// Family photo sharing backend for kids' memories.

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is one upload with its three renditions and denormalized counters.
// Counters move only inside the same transaction as their detail rows.
// Photos are soft-deleted.
type Photo struct {
	ID            string        `gorm:"type:char(36);primaryKey" json:"id"`
	AlbumID       string        `gorm:"type:char(36);not null;index" json:"album_id"`
	CreatedBy     string        `gorm:"type:char(36);not null;index" json:"created_by"`
	FileURL       string        `gorm:"size:512;not null" json:"file_url"`
	ThumbnailURL  string        `gorm:"size:512;not null" json:"thumbnail_url"`
	MediumURL     string        `gorm:"size:512;not null" json:"medium_url"`
	Caption       *string       `gorm:"size:1024" json:"caption"`
	DateTaken     *time.Time    `json:"date_taken"`
	ExifData      JSON          `json:"exif_data"`
	Tags          StringList    `json:"tags"`
	IsDeleted     bool          `gorm:"not null;default:false" json:"-"`
	LikesCount    int64         `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int64         `gorm:"not null;default:0" json:"comments_count"`
	ViewCount     int64         `gorm:"not null;default:0" json:"view_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Album         *Album        `gorm:"foreignKey:AlbumID" json:"album,omitempty"`
	User          *User         `gorm:"foreignKey:CreatedBy" json:"user,omitempty"`
	KidTags       []PhotoKidTag `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PhotoKidTag links a photo to a tagged kid. The pair is unique; tagging is
// restricted to kids the uploader personally owns.
type PhotoKidTag struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	PhotoID   string    `gorm:"type:char(36);not null;index:idx_photo_kid,unique" json:"photo_id"`
	KidID     string    `gorm:"type:char(36);not null;index:idx_photo_kid,unique" json:"kid_id"`
	CreatedAt time.Time `json:"-"`
}

// Like encodes "user liked photo" by existence. The pair is unique.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_user_photo,unique" json:"user_id"`
	PhotoID   string    `gorm:"type:char(36);not null;index:idx_user_photo,unique" json:"photo_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Photo
func (Photo) TableName() string {
	return "photos"
}

// TableName overrides the table name for PhotoKidTag
func (PhotoKidTag) TableName() string {
	return "photo_kid_tags"
}

// TableName overrides the table name for Like
func (Like) TableName() string {
	return "likes"
}
