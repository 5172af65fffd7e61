package services

import (
	"testing"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/middleware"
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 168,
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	result, err := Register(db, cfg, RegisterInput{
		Email:       "  Mẹ.Bé@Example.COM ",
		Password:    "password123",
		DisplayName: "Mẹ Bé An",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "mẹ.bé@example.com", result.User.Email, "email is normalized")
	assert.Equal(t, models.RoleFamilyMember, result.User.Role)
	assert.Equal(t, "vi", result.User.Language, "language defaults to Vietnamese")
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	login, err := Login(db, cfg, LoginInput{
		Email:    "mẹ.bé@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.NotNil(t, login.User.LastLogin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	_, err := Register(db, cfg, RegisterInput{
		Email:       "taken@example.com",
		Password:    "password123",
		DisplayName: "First",
	}, "vi")
	require.NoError(t, err)

	_, err = Register(db, cfg, RegisterInput{
		Email:       "TAKEN@example.com",
		Password:    "password123",
		DisplayName: "Second",
	}, "vi")
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 409, ce.Code)
	assert.Equal(t, "Email đã được sử dụng", ce.Message)
}

func TestLoginRejections(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	// Wrong password and unknown email read the same
	_, err := Login(db, cfg, LoginInput{Email: "u@example.com", Password: "wrong"})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 401, ce.Code)
	assert.Equal(t, msgBadCredentials, ce.Message)

	_, err = Login(db, cfg, LoginInput{Email: "nobody@example.com", Password: "password123"})
	require.Error(t, err)
	ce, _ = types.AsCustom(err)
	assert.Equal(t, msgBadCredentials, ce.Message)

	// Soft-deleted accounts cannot log in
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_deleted", true)
	_, err = Login(db, cfg, LoginInput{Email: "u@example.com", Password: "password123"})
	require.Error(t, err)
	ce, _ = types.AsCustom(err)
	assert.Equal(t, 401, ce.Code)
}

func TestTokenClaims(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	result, err := Register(db, cfg, RegisterInput{
		Email:       "claims@example.com",
		Password:    "password123",
		DisplayName: "Claims",
	}, "vi")
	require.NoError(t, err)

	var claims middleware.Claims
	parsed, err := jwt.ParseWithClaims(result.AccessToken, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, result.User.ID, claims.Subject)
	assert.Equal(t, "claims@example.com", claims.Email)
	assert.Equal(t, models.RoleFamilyMember, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(accessTokenTTL), claims.ExpiresAt.Time, time.Minute)

	// The refresh token carries the configured longer lifetime
	var refreshClaims middleware.Claims
	_, err = jwt.ParseWithClaims(result.RefreshToken, &refreshClaims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), refreshClaims.ExpiresAt.Time, time.Minute)
}

func TestRefreshTokensDeletedUser(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	_, err := RefreshTokens(db, cfg, user.ID)
	require.NoError(t, err)

	db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_deleted", true)
	_, err = RefreshTokens(db, cfg, user.ID)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 401, ce.Code)
}

func TestForgotPasswordSilentForUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	token, err := ForgotPassword(db, cfg, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token, "unknown email yields no token, no error")
}

func TestForgotPasswordStoresDigestOnly(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	token, err := ForgotPassword(db, cfg, "u@example.com")
	require.NoError(t, err)
	assert.Len(t, token, 64)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.ResetToken)
	assert.NotEqual(t, token, *stored.ResetToken, "only the digest is stored")
	require.NotNil(t, stored.ResetExpires)
}

func TestResetPassword(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	token, err := ForgotPassword(db, cfg, "u@example.com")
	require.NoError(t, err)

	require.NoError(t, ResetPassword(db, token, "newpassword1"))

	login, err := Login(db, cfg, LoginInput{Email: "u@example.com", Password: "newpassword1"})
	require.NoError(t, err)
	assert.NotNil(t, login.User)

	// The token is single-use
	err = ResetPassword(db, token, "another999")
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 400, ce.Code)
}

func TestResetPasswordExpired(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	withFrozenClock(t, issued)
	token, err := ForgotPassword(db, cfg, "u@example.com")
	require.NoError(t, err)

	withFrozenClock(t, issued.Add(resetTokenTTL+time.Minute))
	err = ResetPassword(db, token, "newpassword1")
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 400, ce.Code)
	assert.Equal(t, "Token đặt lại mật khẩu không hợp lệ hoặc đã hết hạn", ce.Message)
}

func TestResetPasswordGarbageToken(t *testing.T) {
	db := setupTestDB(t)

	err := ResetPassword(db, "not-a-real-token", "newpassword1")
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 400, ce.Code)
}
