package services

import (
	"testing"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlbumDefaults(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)

	album, err := CreateAlbum(db, user.ID, user.Role, AlbumInput{Title: "Hè 2024"})
	require.NoError(t, err)
	assert.Equal(t, models.PrivacyPrivate, album.PrivacyLevel)
	assert.NotNil(t, album.Tags)
	assert.Empty(t, album.Tags)
}

func TestCreateAlbumFamilyRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	outsider := createTestUser(t, db, "outsider@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")

	_, err := CreateAlbum(db, outsider.ID, outsider.Role, AlbumInput{
		Title:    "Hè 2024",
		FamilyID: &family.ID,
	})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 403, ce.Code)
}

func TestShareAlbumTokenShape(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	result, err := ShareAlbum(db, user.ID, album.ID, "https://app.example.com/", ShareInput{})
	require.NoError(t, err)
	assert.Len(t, result.ShareToken, 64)
	assert.Equal(t, "https://app.example.com/shared/"+result.ShareToken, result.ShareURL)
	assert.False(t, result.PasswordProtected)
}

func TestShareAlbumReplacesToken(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	first, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{})
	require.NoError(t, err)
	second, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ShareToken, second.ShareToken)

	// The old link dies immediately
	_, err = GetSharedAlbum(db, first.ShareToken, nil)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)

	// Exactly one share row exists
	var count int64
	db.Model(&models.Share{}).Where("album_id = ?", album.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = GetSharedAlbum(db, second.ShareToken, nil)
	require.NoError(t, err)
}

func TestShareAlbumCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)
	album := createTestAlbum(t, db, owner.ID, &family.ID, "Hè 2024")

	// Family members can see the album but may not share it
	_, err := GetAlbum(db, member.ID, member.Role, album.ID)
	require.NoError(t, err)

	_, err = ShareAlbum(db, member.ID, album.ID, "", ShareInput{})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)
}

func TestSharedAlbumExpiry(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	result, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{
		ExpiresAt: strPtr("2024-06-01"),
	})
	require.NoError(t, err)

	// At the exact expiry instant the link still works
	withFrozenClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	_, err = GetSharedAlbum(db, result.ShareToken, nil)
	require.NoError(t, err)

	// One second past, it is dead
	withFrozenClock(t, time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC))
	_, err = GetSharedAlbum(db, result.ShareToken, nil)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 403, ce.Code)
	assert.Equal(t, "Liên kết chia sẻ đã hết hạn", ce.Message)
}

func TestSharedAlbumPassword(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	result, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{
		Password: strPtr("secret123"),
	})
	require.NoError(t, err)
	assert.True(t, result.PasswordProtected)

	_, err = GetSharedAlbum(db, result.ShareToken, nil)
	require.Error(t, err)
	ce, _ := types.AsCustom(err)
	assert.Equal(t, "Album này yêu cầu mật khẩu", ce.Message)

	_, err = GetSharedAlbum(db, result.ShareToken, strPtr("wrong"))
	require.Error(t, err)
	ce, _ = types.AsCustom(err)
	assert.Equal(t, "Mật khẩu không đúng", ce.Message)

	shared, err := GetSharedAlbum(db, result.ShareToken, strPtr("secret123"))
	require.NoError(t, err)
	assert.Equal(t, album.ID, shared.ID)
}

func TestSharedAlbumPhotosNewestFirstAndDeletedHidden(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	older := createTestPhoto(t, db, album.ID, user.ID)
	db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour))
	newer := createTestPhoto(t, db, album.ID, user.ID)
	deleted := createTestPhoto(t, db, album.ID, user.ID)
	db.Model(deleted).UpdateColumn("is_deleted", true)

	result, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{})
	require.NoError(t, err)

	shared, err := GetSharedAlbum(db, result.ShareToken, nil)
	require.NoError(t, err)
	require.Len(t, shared.Photos, 2)
	assert.Equal(t, newer.ID, shared.Photos[0].ID)
	assert.Equal(t, older.ID, shared.Photos[1].ID)
}

func TestAlbumSummaryCoverFallback(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	// No photos, no cover
	summary, err := GetAlbum(db, user.ID, user.Role, album.ID)
	require.NoError(t, err)
	assert.Nil(t, summary.CoverPhotoURL)
	assert.Zero(t, summary.PhotosCount)

	oldest := createTestPhoto(t, db, album.ID, user.ID)
	db.Model(oldest).UpdateColumn("created_at", time.Now().Add(-time.Hour))
	db.Model(oldest).UpdateColumn("thumbnail_url", "/uploads/photos/thumbnail/oldest.jpg")
	createTestPhoto(t, db, album.ID, user.ID)

	// Missing cover falls back to the oldest active photo thumbnail
	summary, err = GetAlbum(db, user.ID, user.Role, album.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.CoverPhotoURL)
	assert.Equal(t, "/uploads/photos/thumbnail/oldest.jpg", *summary.CoverPhotoURL)
	assert.Equal(t, int64(2), summary.PhotosCount)

	// An explicit external cover URL wins
	external := "https://cdn.example.com/cover.jpg"
	db.Model(album).UpdateColumn("cover_photo_url", external)
	summary, err = GetAlbum(db, user.ID, user.Role, album.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.CoverPhotoURL)
	assert.Equal(t, external, *summary.CoverPhotoURL)
}

func TestRemoveShareIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")

	// Never shared: still succeeds
	require.NoError(t, RemoveShare(db, user.ID, album.ID))

	result, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{})
	require.NoError(t, err)
	require.NoError(t, RemoveShare(db, user.ID, album.ID))

	_, err = GetSharedAlbum(db, result.ShareToken, nil)
	require.Error(t, err)
}

func TestDeleteAlbumCascades(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Hè 2024")
	photo := createTestPhoto(t, db, album.ID, user.ID)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PhotoID: photo.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PhotoID: photo.ID, UserID: user.ID, Content: "hi"}).Error)
	_, err := ShareAlbum(db, user.ID, album.ID, "", ShareInput{})
	require.NoError(t, err)

	require.NoError(t, DeleteAlbum(db, user.ID, user.Role, album.ID))

	var count int64
	db.Model(&models.Photo{}).Where("album_id = ?", album.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Like{}).Where("photo_id = ?", photo.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Comment{}).Where("photo_id = ?", photo.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Share{}).Where("album_id = ?", album.ID).Count(&count)
	assert.Zero(t, count)
}
