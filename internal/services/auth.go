// auth.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/middleware"
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordCost = 12

	accessTokenTTL    = time.Hour
	resetTokenTTL     = time.Hour
	msgBadCredentials = "Email hoặc mật khẩu không đúng"
)

// RegisterInput carries the sign-up fields.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
}

// LoginInput carries the credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is a short-lived access token plus a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the response for register and login.
type AuthResult struct {
	User *models.User `json:"user"`
	TokenPair
}

// Register creates an account with a bcrypt password hash and returns a fresh
// token pair. A taken email is a Conflict even when the holder is deleted.
func Register(db *gorm.DB, cfg *config.Config, in RegisterInput, language string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.Conflict("Email đã được sử dụng")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	if language == "" {
		language = "vi"
	}
	user := models.User{
		Email:        email,
		PasswordHash: &hashStr,
		DisplayName:  in.DisplayName,
		Role:         models.RoleFamilyMember,
		Language:     language,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	tokens, err := generateTokens(cfg, &user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: &user, TokenPair: *tokens}, nil
}

// Login verifies credentials and returns a token pair. Soft-deleted accounts
// and wrong passwords produce the same Unauthorized message; a passwordless
// account is a distinct BadRequest so support can act on it.
func Login(db *gorm.DB, cfg *config.Config, in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Unauthorized(msgBadCredentials)
		}
		return nil, err
	}
	if user.IsDeleted {
		return nil, types.Unauthorized(msgBadCredentials)
	}
	if user.PasswordHash == nil {
		return nil, types.BadRequest("Tài khoản này chưa có mật khẩu, vui lòng liên hệ quản trị viên")
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)) != nil {
		return nil, types.Unauthorized(msgBadCredentials)
	}

	now := timeNow()
	user.LastLogin = &now
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, err
	}

	tokens, err := generateTokens(cfg, &user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: &user, TokenPair: *tokens}, nil
}

// RefreshTokens mints a new token pair for a live account.
func RefreshTokens(db *gorm.DB, cfg *config.Config, userID string) (*TokenPair, error) {
	var user models.User
	err := db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Unauthorized("User not found")
		}
		return nil, err
	}
	if user.IsDeleted {
		return nil, types.Unauthorized("User not found")
	}
	return generateTokens(cfg, &user)
}

// AuthProfile returns the authenticated account.
func AuthProfile(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Unauthorized("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword mints a reset token and stores its sha256 digest. The
// response never reveals whether the email exists; the raw token is returned
// to the caller for delivery out of band.
func ForgotPassword(db *gorm.DB, cfg *config.Config, email string) (string, error) {
	var user models.User
	err := db.Where("email = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(email)), false).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	digest := sha256.Sum256([]byte(token))
	hashed := hex.EncodeToString(digest[:])
	expires := timeNow().Add(resetTokenTTL)

	err = db.Model(&user).Updates(map[string]interface{}{
		"reset_token":   hashed,
		"reset_expires": expires,
	}).Error
	if err != nil {
		return "", err
	}

	log.Printf("password reset issued for %s, expires %s", user.Email, expires.Format(time.RFC3339))
	return token, nil
}

// ResetPassword consumes a reset token, replaces the password hash and clears
// the token. Expired or unknown tokens are a single BadRequest.
func ResetPassword(db *gorm.DB, token, newPassword string) error {
	digest := sha256.Sum256([]byte(token))
	hashed := hex.EncodeToString(digest[:])

	var user models.User
	err := db.Where("reset_token = ? AND reset_expires > ? AND is_deleted = ?",
		hashed, timeNow(), false).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.BadRequest("Token đặt lại mật khẩu không hợp lệ hoặc đã hết hạn")
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return err
	}

	return db.Model(&user).Updates(map[string]interface{}{
		"password_hash": string(hash),
		"reset_token":   nil,
		"reset_expires": nil,
	}).Error
}

// generateTokens signs the access/refresh pair with the configured HS256
// secret. Both carry {sub, email, role}; only the lifetime differs.
func generateTokens(cfg *config.Config, user *models.User) (*TokenPair, error) {
	access, err := signToken(cfg, user, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(cfg, user, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(cfg *config.Config, user *models.User, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := middleware.Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}
