// photos.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"context"
	"encoding/json"
	"log"
	"path"
	"strings"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/images"
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
)

const (
	msgPhotoNotFound  = "Photo not found or you do not have access"
	defaultPhotoLimit = 50
	maxPhotoLimit     = 200
)

// PhotoUploadInput carries the multipart form fields accompanying an upload.
// Kid and tag lists arrive as JSON-encoded strings in form data; the handler
// decodes them before calling the service.
type PhotoUploadInput struct {
	Caption    *string
	DateTaken  *string
	KidsTagged []string
	Tags       []string
}

// PhotoUpdateInput carries partial metadata updates; nil fields are left
// untouched.
type PhotoUpdateInput struct {
	Caption    *string  `json:"caption"`
	DateTaken  *string  `json:"date_taken"`
	KidsTagged []string `json:"kids_tagged"`
	Tags       []string `json:"tags"`
}

// PhotoView is a photo with its tagged kid IDs flattened for the API.
type PhotoView struct {
	models.Photo
	KidsTagged []string `json:"kids_tagged"`
}

// PhotoList is one page of photos with the unpaged total.
type PhotoList struct {
	Data   []PhotoView `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// LikeResult reports the like state after a toggle operation.
type LikeResult struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// ViewResult reports the view counter after tracking a view.
type ViewResult struct {
	Message   string `json:"message"`
	ViewCount int64  `json:"view_count"`
}

// UploadPhoto runs the full upload path: album access check, rendition
// pipeline, best-effort metadata, kid tag validation, then one transaction
// creating the photo with its tag rows and back-filling the album cover.
func UploadPhoto(ctx context.Context, db *gorm.DB, store storage.Storage, userID, role, albumID string, fileData []byte, filename string, in PhotoUploadInput) (*PhotoView, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var album models.Album
	err = db.Scopes(filter.Scope("albums")).
		Where("albums.id = ? AND albums.is_deleted = ?", albumID, false).
		First(&album).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Album not found or you do not have access")
		}
		return nil, err
	}

	result, err := images.Process(fileData, filename)
	if err != nil {
		return nil, types.BadRequest("Unsupported or corrupt image file")
	}

	urls := make(map[string]string, 3)
	for _, r := range []images.Rendition{result.Original, result.Thumbnail, result.Medium} {
		url, err := store.Upload(ctx, r.Data, path.Join(storage.FolderPhotos, r.Folder), r.Filename)
		if err != nil {
			return nil, err
		}
		urls[r.Folder] = url
	}

	// Metadata extraction never fails an upload
	meta := images.ExtractMetadata(fileData)
	exifData, err := json.Marshal(meta)
	if err != nil {
		log.Printf("photo metadata marshal failed: %v", err)
		exifData = []byte("{}")
	}

	kidsTagged := dedupe(in.KidsTagged)
	if len(kidsTagged) > 0 {
		if err := validateKidsOwned(db, userID, kidsTagged); err != nil {
			return nil, err
		}
	}

	var dateTaken *time.Time
	if in.DateTaken != nil && *in.DateTaken != "" {
		t, err := parseDate(*in.DateTaken)
		if err != nil {
			return nil, types.BadRequest("Invalid date_taken format")
		}
		dateTaken = &t
	}

	photo := models.Photo{
		AlbumID:      album.ID,
		CreatedBy:    userID,
		FileURL:      urls["original"],
		ThumbnailURL: urls["thumbnail"],
		MediumURL:    urls["medium"],
		Caption:      in.Caption,
		DateTaken:    dateTaken,
		ExifData:     models.NewJSON(exifData),
		Tags:         in.Tags,
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
		for _, kidID := range kidsTagged {
			if err := tx.Create(&models.PhotoKidTag{PhotoID: photo.ID, KidID: kidID}).Error; err != nil {
				return err
			}
		}
		if album.CoverPhotoURL == nil || *album.CoverPhotoURL == "" {
			if err := tx.Model(&models.Album{}).Where("id = ?", album.ID).
				Update("cover_photo_url", photo.ThumbnailURL).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadPhotoView(db, photo.ID)
}

// ListPhotos returns one page of visible photos. Album and tagged-kid filters
// each verify access to the referenced entity before narrowing the query. The
// sort is two-key: date_taken descending, then creation time descending.
func ListPhotos(db *gorm.DB, userID, role string, albumID, kidID *string, limit, offset int) (*PhotoList, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPhotoLimit
	}
	if limit > maxPhotoLimit {
		limit = maxPhotoLimit
	}
	if offset < 0 {
		offset = 0
	}

	base := func() *gorm.DB {
		q := db.Model(&models.Photo{}).
			Joins("JOIN albums ON albums.id = photos.album_id").
			Where("photos.is_deleted = ? AND albums.is_deleted = ?", false, false).
			Scopes(filter.Scope("albums"))
		if albumID != nil && *albumID != "" {
			q = q.Where("photos.album_id = ?", *albumID)
		}
		if kidID != nil && *kidID != "" {
			q = q.Where("photos.id IN (?)",
				db.Model(&models.PhotoKidTag{}).Select("photo_id").Where("kid_id = ?", *kidID))
		}
		return q
	}

	if albumID != nil && *albumID != "" {
		if _, err := findAlbum(db, userID, role, *albumID); err != nil {
			return nil, err
		}
	}
	if kidID != nil && *kidID != "" {
		if _, err := findKid(db, userID, role, *kidID); err != nil {
			return nil, err
		}
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	var photos []models.Photo
	err = base().
		Preload("Album").
		Preload("User").
		Preload("KidTags").
		Order("photos.date_taken DESC").
		Order("photos.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	data := make([]PhotoView, 0, len(photos))
	for i := range photos {
		data = append(data, newPhotoView(&photos[i]))
	}

	return &PhotoList{Data: data, Total: total, Limit: limit, Offset: offset}, nil
}

// GetPhoto returns one photo under the access filter and increments its view
// counter. Repeated reads change state on purpose.
func GetPhoto(db *gorm.DB, userID, role, photoID string) (*PhotoView, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var photo models.Photo
	err = db.Joins("JOIN albums ON albums.id = photos.album_id").
		Where("photos.id = ? AND photos.is_deleted = ? AND albums.is_deleted = ?", photoID, false, false).
		Scopes(filter.Scope("albums")).
		Preload("Album").
		Preload("User").
		Preload("KidTags").
		First(&photo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgPhotoNotFound)
		}
		return nil, err
	}

	err = db.Model(&models.Photo{}).Where("id = ?", photo.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return nil, err
	}
	photo.ViewCount++

	view := newPhotoView(&photo)
	return &view, nil
}

// UpdatePhoto applies metadata updates. Scope is the album owner, not the
// wider family set.
func UpdatePhoto(db *gorm.DB, userID, photoID string, in PhotoUpdateInput) (*PhotoView, error) {
	photo, err := findOwnedPhoto(db, userID, photoID)
	if err != nil {
		return nil, err
	}

	kidsTagged := dedupe(in.KidsTagged)
	if len(kidsTagged) > 0 {
		if err := validateKidsOwned(db, userID, kidsTagged); err != nil {
			return nil, err
		}
	}

	if in.Caption != nil {
		photo.Caption = in.Caption
	}
	if in.DateTaken != nil {
		if *in.DateTaken == "" {
			photo.DateTaken = nil
		} else {
			t, err := parseDate(*in.DateTaken)
			if err != nil {
				return nil, types.BadRequest("Invalid date_taken format")
			}
			photo.DateTaken = &t
		}
	}
	if in.Tags != nil {
		photo.Tags = in.Tags
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(photo).Error; err != nil {
			return err
		}
		if in.KidsTagged != nil {
			return replaceKidTags(tx, photo.ID, kidsTagged)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loadPhotoView(db, photo.ID)
}

// SoftDeletePhoto flips the is_deleted flag. Renditions stay in storage so
// the album cover and milestone references keep resolving.
func SoftDeletePhoto(db *gorm.DB, userID, photoID string) error {
	photo, err := findOwnedPhoto(db, userID, photoID)
	if err != nil {
		return err
	}
	return db.Model(&models.Photo{}).Where("id = ?", photo.ID).
		Update("is_deleted", true).Error
}

// TagKids replaces the photo's tagged kid set. Every kid must be owned by the
// actor; tagging is deliberately stricter than family-wide access.
func TagKids(db *gorm.DB, userID, photoID string, kidIDs []string) (*PhotoView, error) {
	photo, err := findOwnedPhoto(db, userID, photoID)
	if err != nil {
		return nil, err
	}

	kidsTagged := dedupe(kidIDs)
	if err := validateKidsOwned(db, userID, kidsTagged); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return replaceKidTags(tx, photo.ID, kidsTagged)
	})
	if err != nil {
		return nil, err
	}

	return loadPhotoView(db, photo.ID)
}

// LikePhoto records a like. The Like row and the counter move in one
// transaction; liking twice is a no-op that reports liked without a second
// increment.
func LikePhoto(db *gorm.DB, userID, photoID string) (*LikeResult, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return nil, err
	}

	var existing models.Like
	err := db.Where("user_id = ? AND photo_id = ?", userID, photoID).First(&existing).Error
	if err == nil {
		return &LikeResult{Message: "Photo already liked", Liked: true}, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: userID, PhotoID: photoID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Photo{}).Where("id = ?", photoID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return &LikeResult{Message: "Photo liked successfully", Liked: true}, nil
}

// UnlikePhoto removes a like. Row and counter move together; unliking a photo
// that was never liked is a no-op and the counter never goes below zero.
func UnlikePhoto(db *gorm.DB, userID, photoID string) (*LikeResult, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return nil, err
	}

	var existing models.Like
	err := db.Where("user_id = ? AND photo_id = ?", userID, photoID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return &LikeResult{Message: "Photo was not liked", Liked: false}, nil
	}
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Like{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Photo{}).Where("id = ?", photoID).
			UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return nil, err
	}

	return &LikeResult{Message: "Photo unliked successfully", Liked: false}, nil
}

// IsLiked reports whether the actor has liked the photo.
func IsLiked(db *gorm.DB, userID, photoID string) (bool, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return false, err
	}

	var count int64
	err := db.Model(&models.Like{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPhotoComments returns the photo's active comments, newest first, flat.
func GetPhotoComments(db *gorm.DB, photoID string) ([]models.Comment, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Where("photo_id = ? AND is_deleted = ?", photoID, false).
		Preload("User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// AddPhotoComment creates a comment and bumps the denormalized counter in one
// transaction.
func AddPhotoComment(db *gorm.DB, userID, photoID, content string) (*models.Comment, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, types.BadRequest("Comment content is required")
	}

	comment := models.Comment{
		PhotoID: photoID,
		UserID:  userID,
		Content: content,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Photo{}).Where("id = ?", photoID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	db.Preload("User").First(&comment, "id = ?", comment.ID)
	return &comment, nil
}

// TrackView increments the view counter and returns the new value.
func TrackView(db *gorm.DB, photoID string) (*ViewResult, error) {
	if _, err := findActivePhoto(db, photoID); err != nil {
		return nil, err
	}

	err := db.Model(&models.Photo{}).Where("id = ?", photoID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return nil, err
	}

	var viewCount int64
	err = db.Model(&models.Photo{}).Where("id = ?", photoID).
		Pluck("view_count", &viewCount).Error
	if err != nil {
		return nil, err
	}

	return &ViewResult{Message: "View tracked successfully", ViewCount: viewCount}, nil
}

// findActivePhoto returns a non-deleted photo by ID with no access scoping.
func findActivePhoto(db *gorm.DB, photoID string) (*models.Photo, error) {
	var photo models.Photo
	err := db.Where("id = ? AND is_deleted = ?", photoID, false).First(&photo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Photo not found")
		}
		return nil, err
	}
	return &photo, nil
}

// findOwnedPhoto scopes to photos whose parent album is owned by the actor.
func findOwnedPhoto(db *gorm.DB, userID, photoID string) (*models.Photo, error) {
	var photo models.Photo
	err := db.Joins("JOIN albums ON albums.id = photos.album_id").
		Where("photos.id = ? AND photos.is_deleted = ? AND albums.is_deleted = ? AND albums.created_by = ?",
			photoID, false, false, userID).
		First(&photo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgPhotoNotFound)
		}
		return nil, err
	}
	return &photo, nil
}

// validateKidsOwned requires every kid ID to reference a kid created by the
// actor. Family-level access is not enough to tag.
func validateKidsOwned(db *gorm.DB, userID string, kidIDs []string) error {
	if len(kidIDs) == 0 {
		return nil
	}
	var count int64
	err := db.Model(&models.Kid{}).
		Where("id IN ? AND created_by = ?", kidIDs, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(kidIDs)) {
		return types.Forbidden("Some kids do not exist or you do not have access")
	}
	return nil
}

func replaceKidTags(tx *gorm.DB, photoID string, kidIDs []string) error {
	if err := tx.Where("photo_id = ?", photoID).Delete(&models.PhotoKidTag{}).Error; err != nil {
		return err
	}
	for _, kidID := range kidIDs {
		if err := tx.Create(&models.PhotoKidTag{PhotoID: photoID, KidID: kidID}).Error; err != nil {
			return err
		}
	}
	return nil
}

func loadPhotoView(db *gorm.DB, photoID string) (*PhotoView, error) {
	var photo models.Photo
	err := db.Preload("Album").Preload("User").Preload("KidTags").
		First(&photo, "id = ?", photoID).Error
	if err != nil {
		return nil, err
	}
	view := newPhotoView(&photo)
	return &view, nil
}

func newPhotoView(photo *models.Photo) PhotoView {
	tagged := make([]string, 0, len(photo.KidTags))
	for _, t := range photo.KidTags {
		tagged = append(tagged, t.KidID)
	}
	return PhotoView{Photo: *photo, KidsTagged: tagged}
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
