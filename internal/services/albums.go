// albums.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgAlbumNotFound = "Album không tồn tại hoặc không có quyền truy cập"

	shareTokenBytes   = 32
	sharePasswordCost = 12
)

// AlbumInput carries the fields for creating an album.
type AlbumInput struct {
	Title         string   `json:"title" validate:"required"`
	Description   *string  `json:"description"`
	KidID         *string  `json:"kid_id"`
	FamilyID      *string  `json:"family_id"`
	PrivacyLevel  *string  `json:"privacy_level" validate:"omitempty,oneof=private family public"`
	CoverPhotoURL *string  `json:"cover_photo_url"`
	Tags          []string `json:"tags"`
}

// AlbumUpdateInput carries partial updates; nil fields are left untouched.
type AlbumUpdateInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	KidID         *string  `json:"kid_id"`
	FamilyID      *string  `json:"family_id"`
	PrivacyLevel  *string  `json:"privacy_level" validate:"omitempty,oneof=private family public"`
	CoverPhotoURL *string  `json:"cover_photo_url"`
	Tags          []string `json:"tags"`
}

// AlbumSummary is an album annotated with its active photo count and the
// effective cover URL.
type AlbumSummary struct {
	models.Album
	PhotosCount int64 `json:"photos_count"`
}

// ShareInput configures a public share link.
type ShareInput struct {
	Password  *string `json:"password"`
	ExpiresAt *string `json:"expires_at"`
}

// ShareResult is returned after creating or replacing a share link.
type ShareResult struct {
	Message           string     `json:"message"`
	ShareURL          string     `json:"share_url"`
	ShareToken        string     `json:"share_token"`
	PasswordProtected bool       `json:"password_protected"`
	ExpiresAt         *time.Time `json:"expires_at"`
}

// SharedAlbum is the public view of a shared album: no owner identity, no
// internal flags, only active photos.
type SharedAlbum struct {
	models.Album
	Photos []models.Photo `json:"photos"`
}

// CreateAlbum persists a new album. A kid reference must be visible to the
// actor, a family reference needs an active membership; the two checks are
// independent.
func CreateAlbum(db *gorm.DB, userID, role string, in AlbumInput) (*models.Album, error) {
	if in.KidID != nil && *in.KidID != "" {
		if _, err := findKid(db, userID, role, *in.KidID); err != nil {
			return nil, err
		}
	}
	if in.FamilyID != nil && *in.FamilyID != "" {
		ok, err := HasFamilyAccess(db, userID, *in.FamilyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.Forbidden("Bạn không có quyền tạo album trong family này")
		}
	}

	album := models.Album{
		Title:         in.Title,
		Description:   in.Description,
		CreatedBy:     userID,
		PrivacyLevel:  models.PrivacyPrivate,
		CoverPhotoURL: in.CoverPhotoURL,
		Tags:          in.Tags,
	}
	if in.PrivacyLevel != nil && *in.PrivacyLevel != "" {
		album.PrivacyLevel = *in.PrivacyLevel
	}
	if in.KidID != nil && *in.KidID != "" {
		album.KidID = in.KidID
	}
	if in.FamilyID != nil && *in.FamilyID != "" {
		album.FamilyID = in.FamilyID
	}
	if album.Tags == nil {
		album.Tags = []string{}
	}

	if err := db.Create(&album).Error; err != nil {
		return nil, err
	}

	db.Preload("Kid").Preload("Family").First(&album, "id = ?", album.ID)
	return &album, nil
}

// ListAlbums returns all albums visible to the actor, newest first, with
// photo counts and effective covers. An optional kid filter narrows the list.
func ListAlbums(db *gorm.DB, userID, role string, kidID *string) ([]AlbumSummary, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	query := db.Scopes(filter.Scope("albums")).Preload("Kid")
	if kidID != nil && *kidID != "" {
		query = query.Where("albums.kid_id = ?", *kidID)
	}

	var albums []models.Album
	if err := query.Order("created_at DESC").Find(&albums).Error; err != nil {
		return nil, err
	}

	out := make([]AlbumSummary, 0, len(albums))
	for i := range albums {
		summary, err := summarizeAlbum(db, &albums[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

// GetAlbum returns one album under the access filter, with photo count and
// effective cover. A missing and an inaccessible album are both a 404.
func GetAlbum(db *gorm.DB, userID, role, albumID string) (*AlbumSummary, error) {
	album, err := findAlbum(db, userID, role, albumID)
	if err != nil {
		return nil, err
	}
	return summarizeAlbum(db, album)
}

// UpdateAlbum applies partial updates under the access filter. Changing the
// kid or family reference re-validates access to the new target.
func UpdateAlbum(db *gorm.DB, userID, role, albumID string, in AlbumUpdateInput) (*models.Album, error) {
	album, err := findAlbum(db, userID, role, albumID)
	if err != nil {
		return nil, err
	}

	if in.KidID != nil && *in.KidID != "" &&
		(album.KidID == nil || *album.KidID != *in.KidID) {
		if _, err := findKid(db, userID, role, *in.KidID); err != nil {
			return nil, err
		}
	}
	if in.FamilyID != nil && *in.FamilyID != "" &&
		(album.FamilyID == nil || *album.FamilyID != *in.FamilyID) {
		ok, err := HasFamilyAccess(db, userID, *in.FamilyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.Forbidden("Bạn không có quyền chuyển album vào family này")
		}
	}

	if in.Title != nil {
		album.Title = *in.Title
	}
	if in.Description != nil {
		album.Description = in.Description
	}
	if in.KidID != nil {
		if *in.KidID == "" {
			album.KidID = nil
		} else {
			album.KidID = in.KidID
		}
	}
	if in.FamilyID != nil {
		if *in.FamilyID == "" {
			album.FamilyID = nil
		} else {
			album.FamilyID = in.FamilyID
		}
	}
	if in.PrivacyLevel != nil && *in.PrivacyLevel != "" {
		album.PrivacyLevel = *in.PrivacyLevel
	}
	if in.CoverPhotoURL != nil {
		album.CoverPhotoURL = in.CoverPhotoURL
	}
	if in.Tags != nil {
		album.Tags = in.Tags
	}

	if err := db.Save(album).Error; err != nil {
		return nil, err
	}
	return album, nil
}

// DeleteAlbum hard-deletes an album with its photos, share link and the
// photo-level records hanging off them. Access filter applies.
func DeleteAlbum(db *gorm.DB, userID, role, albumID string) error {
	album, err := findAlbum(db, userID, role, albumID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteAlbums(tx, tx.Model(&models.Album{}).Where("id = ?", album.ID))
	})
}

// ShareAlbum creates or replaces the album's share link. Only the album
// creator may share; a replaced token invalidates the old link immediately.
func ShareAlbum(db *gorm.DB, userID, albumID, frontendURL string, in ShareInput) (*ShareResult, error) {
	var album models.Album
	err := db.Where("id = ? AND created_by = ?", albumID, userID).First(&album).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgAlbumNotFound)
		}
		return nil, err
	}

	token := newShareToken()

	var passwordHash *string
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), sharePasswordCost)
		if err != nil {
			return nil, err
		}
		s := string(hash)
		passwordHash = &s
	}

	var expiresAt *time.Time
	if in.ExpiresAt != nil && *in.ExpiresAt != "" {
		t, err := parseDate(*in.ExpiresAt)
		if err != nil {
			return nil, types.BadRequest("Invalid expires_at format")
		}
		expiresAt = &t
	}

	var share models.Share
	err = db.Where("album_id = ?", album.ID).First(&share).Error
	switch {
	case err == nil:
		share.ShareToken = token
		share.PasswordHash = passwordHash
		share.ExpiresAt = expiresAt
		if err := db.Save(&share).Error; err != nil {
			return nil, err
		}
	case err == gorm.ErrRecordNotFound:
		share = models.Share{
			AlbumID:      album.ID,
			SharedBy:     userID,
			ShareToken:   token,
			PasswordHash: passwordHash,
			ExpiresAt:    expiresAt,
		}
		if err := db.Create(&share).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	base := frontendURL
	if base == "" {
		base = "http://localhost:3000"
	}

	return &ShareResult{
		Message:           "Tạo liên kết chia sẻ thành công",
		ShareURL:          strings.TrimSuffix(base, "/") + "/shared/" + share.ShareToken,
		ShareToken:        share.ShareToken,
		PasswordProtected: passwordHash != nil,
		ExpiresAt:         share.ExpiresAt,
	}, nil
}

// GetSharedAlbum resolves a share token without authentication. Expiry is
// strict: a link is dead only once now is past expires_at. Wrong passwords
// and missing passwords are both a 403.
func GetSharedAlbum(db *gorm.DB, shareToken string, password *string) (*SharedAlbum, error) {
	var share models.Share
	err := db.Where("share_token = ?", shareToken).First(&share).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Liên kết chia sẻ không tồn tại")
		}
		return nil, err
	}

	if share.ExpiresAt != nil && timeNow().After(*share.ExpiresAt) {
		return nil, types.Forbidden("Liên kết chia sẻ đã hết hạn")
	}

	if share.PasswordHash != nil {
		if password == nil || *password == "" {
			return nil, types.Forbidden("Album này yêu cầu mật khẩu")
		}
		if bcrypt.CompareHashAndPassword([]byte(*share.PasswordHash), []byte(*password)) != nil {
			return nil, types.Forbidden("Mật khẩu không đúng")
		}
	}

	var album models.Album
	err = db.Preload("Kid").Where("id = ?", share.AlbumID).First(&album).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Album không tồn tại")
		}
		return nil, err
	}

	var photos []models.Photo
	err = db.Where("album_id = ? AND is_deleted = ?", album.ID, false).
		Order("created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	if album.CoverPhotoURL == nil || strings.HasPrefix(*album.CoverPhotoURL, "/uploads/") {
		album.CoverPhotoURL = nil
		if len(photos) > 0 {
			album.CoverPhotoURL = &photos[0].ThumbnailURL
		}
	}

	return &SharedAlbum{Album: album, Photos: photos}, nil
}

// RemoveShare deletes the album's share link. Only the album creator may
// stop sharing; removing a never-shared album is a no-op.
func RemoveShare(db *gorm.DB, userID, albumID string) error {
	var album models.Album
	err := db.Where("id = ? AND created_by = ?", albumID, userID).First(&album).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound(msgAlbumNotFound)
		}
		return err
	}
	return db.Where("album_id = ?", album.ID).Delete(&models.Share{}).Error
}

func findAlbum(db *gorm.DB, userID, role, albumID string) (*models.Album, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var album models.Album
	err = db.Scopes(filter.Scope("albums")).
		Preload("Kid").
		Preload("Family").
		Where("albums.id = ?", albumID).
		First(&album).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgAlbumNotFound)
		}
		return nil, err
	}
	return &album, nil
}

// summarizeAlbum computes the active photo count and resolves the effective
// cover. An explicit external cover URL wins; a stale local path or a missing
// cover falls back to the oldest active photo's thumbnail.
func summarizeAlbum(db *gorm.DB, album *models.Album) (*AlbumSummary, error) {
	var count int64
	err := db.Model(&models.Photo{}).
		Where("album_id = ? AND is_deleted = ?", album.ID, false).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	if album.CoverPhotoURL == nil || strings.HasPrefix(*album.CoverPhotoURL, "/uploads/") {
		var first models.Photo
		err := db.Where("album_id = ? AND is_deleted = ?", album.ID, false).
			Order("created_at ASC").
			First(&first).Error
		switch {
		case err == nil:
			album.CoverPhotoURL = &first.ThumbnailURL
		case err == gorm.ErrRecordNotFound:
			album.CoverPhotoURL = nil
		default:
			return nil, err
		}
	}

	return &AlbumSummary{Album: *album, PhotosCount: count}, nil
}

// cascadeDeleteAlbums hard-deletes every album matched by albumQuery together
// with its photos, shares and the records referencing those photos. Must run
// inside a transaction.
func cascadeDeleteAlbums(tx *gorm.DB, albumQuery *gorm.DB) error {
	var albumIDs []string
	if err := albumQuery.Pluck("id", &albumIDs).Error; err != nil {
		return err
	}
	if len(albumIDs) == 0 {
		return nil
	}

	var photoIDs []string
	err := tx.Model(&models.Photo{}).Where("album_id IN ?", albumIDs).Pluck("id", &photoIDs).Error
	if err != nil {
		return err
	}
	if len(photoIDs) > 0 {
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.MilestonePhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id IN ?", photoIDs).Delete(&models.PhotoKidTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", photoIDs).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("album_id IN ?", albumIDs).Delete(&models.Share{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", albumIDs).Delete(&models.Album{}).Error
}

// newShareToken returns 32 random bytes as hex, 64 characters.
func newShareToken() string {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
