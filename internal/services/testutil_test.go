package services

import (
	"testing"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Kid{},
		&models.GrowthEntry{},
		&models.Album{},
		&models.Share{},
		&models.Photo{},
		&models.PhotoKidTag{},
		&models.Like{},
		&models.Milestone{},
		&models.MilestonePhoto{},
		&models.Comment{},
	)
	require.NoError(t, err, "Failed to migrate test database")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	user := models.User{
		Email:        email,
		PasswordHash: &h,
		DisplayName:  email,
		Role:         role,
		Language:     "vi",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestFamily creates a family through the service so the owner
// membership row exists, matching production state.
func createTestFamily(t *testing.T, db *gorm.DB, ownerID, name string) *models.Family {
	t.Helper()

	family, err := CreateFamily(db, ownerID, FamilyInput{Name: name})
	require.NoError(t, err)
	return family
}

// addActiveMember inserts an active membership directly, skipping the
// invite/accept round trip.
func addActiveMember(t *testing.T, db *gorm.DB, familyID, userID string) {
	t.Helper()

	member := models.FamilyMember{
		FamilyID: familyID,
		UserID:   userID,
		Role:     models.FamilyRoleMember,
		Status:   models.MemberStatusActive,
	}
	require.NoError(t, db.Create(&member).Error)
}

func createTestKid(t *testing.T, db *gorm.DB, createdBy string, familyID *string, name string) *models.Kid {
	t.Helper()

	kid := models.Kid{
		CreatedBy:   createdBy,
		FamilyID:    familyID,
		Name:        name,
		DateOfBirth: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&kid).Error)
	return &kid
}

func createTestAlbum(t *testing.T, db *gorm.DB, createdBy string, familyID *string, title string) *models.Album {
	t.Helper()

	album := models.Album{
		Title:        title,
		CreatedBy:    createdBy,
		FamilyID:     familyID,
		PrivacyLevel: models.PrivacyPrivate,
		Tags:         models.StringList{},
	}
	require.NoError(t, db.Create(&album).Error)
	return &album
}

func createTestPhoto(t *testing.T, db *gorm.DB, albumID, createdBy string) *models.Photo {
	t.Helper()

	photo := models.Photo{
		AlbumID:      albumID,
		CreatedBy:    createdBy,
		FileURL:      "/uploads/photos/original/x.jpg",
		ThumbnailURL: "/uploads/photos/thumbnail/x.jpg",
		MediumURL:    "/uploads/photos/medium/x.jpg",
		Tags:         models.StringList{},
	}
	require.NoError(t, db.Create(&photo).Error)
	return &photo
}

// withFrozenClock pins the service clock for the duration of one test.
func withFrozenClock(t *testing.T, now time.Time) {
	t.Helper()

	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func strPtr(s string) *string {
	return &s
}
