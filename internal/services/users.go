// users.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"context"
	"log"
	"path"
	"strings"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/storage"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgUserNotFound = "Người dùng không tồn tại"
	msgNoAdminRight = "Bạn không có quyền truy cập chức năng này"
)

// ProfileUpdateInput carries partial profile updates.
type ProfileUpdateInput struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Language    *string `json:"language" validate:"omitempty,oneof=vi en"`
}

// ChangePasswordInput carries the current and replacement password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AvatarResult reports the stored avatar URL.
type AvatarResult struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// GetUserProfile returns a live account by ID.
func GetUserProfile(db *gorm.DB, userID string) (*models.User, error) {
	return findActiveUser(db, userID)
}

// UpdateUserProfile applies partial updates to the actor's own profile.
func UpdateUserProfile(db *gorm.DB, userID string, in ProfileUpdateInput) (*models.User, error) {
	user, err := findActiveUser(db, userID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != nil && *in.DisplayName != "" {
		user.DisplayName = *in.DisplayName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}
	if in.Language != nil && *in.Language != "" {
		user.Language = *in.Language
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one. A
// wrong current password is a BadRequest, not an auth failure; the caller is
// already authenticated.
func ChangePassword(db *gorm.DB, userID string, in ChangePasswordInput) error {
	user, err := findActiveUser(db, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil {
		return types.BadRequest("Tài khoản này chưa có mật khẩu, vui lòng liên hệ quản trị viên")
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return types.BadRequest("Mật khẩu hiện tại không đúng")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), passwordCost)
	if err != nil {
		return err
	}
	return db.Model(user).Update("password_hash", string(hash)).Error
}

// UploadAvatar stores a new avatar under a random filename, points the
// profile at it and drops the previous file best-effort.
func UploadAvatar(ctx context.Context, db *gorm.DB, store storage.Storage, userID string, data []byte, filename string) (*AvatarResult, error) {
	user, err := findActiveUser(db, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	url, err := store.Upload(ctx, data, storage.FolderAvatars, uuid.NewString()+ext)
	if err != nil {
		return nil, err
	}

	old := user.AvatarURL
	if err := db.Model(user).Update("avatar_url", url).Error; err != nil {
		return nil, err
	}

	if old != nil && *old != "" {
		if err := store.Delete(ctx, *old); err != nil {
			log.Printf("failed to delete old avatar %s: %v", *old, err)
		}
	}

	return &AvatarResult{URL: url, Message: "Upload avatar thành công"}, nil
}

// ListUsers returns all live accounts, newest first. Admin only.
func ListUsers(db *gorm.DB, role string) ([]models.User, error) {
	if role != models.RoleAdmin {
		return nil, types.Forbidden(msgNoAdminRight)
	}

	var users []models.User
	err := db.Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID returns one live account. Admin only.
func GetUserByID(db *gorm.DB, role, targetUserID string) (*models.User, error) {
	if role != models.RoleAdmin {
		return nil, types.Forbidden(msgNoAdminRight)
	}
	return findActiveUser(db, targetUserID)
}

// SoftDeleteUser marks an account deleted. Admin only, never the actor's own
// account, and deleting twice is a BadRequest.
func SoftDeleteUser(db *gorm.DB, actorID, role, targetUserID string) error {
	if role != models.RoleAdmin {
		return types.Forbidden(msgNoAdminRight)
	}
	if actorID == targetUserID {
		return types.BadRequest("Bạn không thể xóa chính mình")
	}

	var user models.User
	err := db.Where("id = ?", targetUserID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound(msgUserNotFound)
		}
		return err
	}
	if user.IsDeleted {
		return types.BadRequest("Người dùng đã bị xóa trước đó")
	}

	return db.Model(&user).Update("is_deleted", true).Error
}

func findActiveUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return &user, nil
}
