package services

import (
	"testing"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePhotoIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, user.ID)

	result, err := LikePhoto(db, user.ID, photo.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, "Photo liked successfully", result.Message)

	// Second like: no-op, counter unchanged
	result, err = LikePhoto(db, user.ID, photo.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, "Photo already liked", result.Message)

	var likesCount int64
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Pluck("likes_count", &likesCount)
	assert.Equal(t, int64(1), likesCount)

	var rows int64
	db.Model(&models.Like{}).Where("photo_id = ?", photo.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestUnlikePhotoFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, user.ID)

	// Unlike without a prior like: no-op
	result, err := UnlikePhoto(db, user.ID, photo.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, "Photo was not liked", result.Message)

	var likesCount int64
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Pluck("likes_count", &likesCount)
	assert.Zero(t, likesCount)

	_, err = LikePhoto(db, user.ID, photo.ID)
	require.NoError(t, err)
	_, err = UnlikePhoto(db, user.ID, photo.ID)
	require.NoError(t, err)

	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Pluck("likes_count", &likesCount)
	assert.Zero(t, likesCount)

	liked, err := IsLiked(db, user.ID, photo.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestAddPhotoCommentBumpsCounter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, user.ID)

	comment, err := AddPhotoComment(db, user.ID, photo.ID, "  Dễ thương quá!  ")
	require.NoError(t, err)
	assert.Equal(t, "Dễ thương quá!", comment.Content, "content is trimmed")

	var commentsCount int64
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Pluck("comments_count", &commentsCount)
	assert.Equal(t, int64(1), commentsCount)

	_, err = AddPhotoComment(db, user.ID, photo.ID, "   ")
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 400, ce.Code)
}

func TestGetPhotoIncrementsViews(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "u@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, user.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, user.ID)

	view, err := GetPhoto(db, user.ID, user.Role, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ViewCount)

	view, err = GetPhoto(db, user.ID, user.Role, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.ViewCount)

	result, err := TrackView(db, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ViewCount)
}

func TestTagKidsOwnershipRequired(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)

	album := createTestAlbum(t, db, owner.ID, &family.ID, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)
	ownKid := createTestKid(t, db, owner.ID, &family.ID, "Bé An")
	memberKid := createTestKid(t, db, member.ID, &family.ID, "Bé Bình")

	// Tagging the creator's own kid works
	view, err := TagKids(db, owner.ID, photo.ID, []string{ownKid.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{ownKid.ID}, view.KidsTagged)

	// A family member's kid is visible but not taggable by the album owner
	_, err = TagKids(db, owner.ID, photo.ID, []string{memberKid.ID})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 403, ce.Code)
}

func TestTagKidsReplacesSet(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)
	kidA := createTestKid(t, db, owner.ID, nil, "Bé An")
	kidB := createTestKid(t, db, owner.ID, nil, "Bé Bình")

	_, err := TagKids(db, owner.ID, photo.ID, []string{kidA.ID})
	require.NoError(t, err)

	view, err := TagKids(db, owner.ID, photo.ID, []string{kidB.ID, kidB.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{kidB.ID}, view.KidsTagged, "set is replaced and deduped")
}

func TestSoftDeletePhotoHidesFromQueries(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	require.NoError(t, SoftDeletePhoto(db, owner.ID, photo.ID))

	_, err := GetPhoto(db, owner.ID, owner.Role, photo.ID)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)

	list, err := ListPhotos(db, owner.ID, owner.Role, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	// The row itself survives for references
	var count int64
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListPhotosScopingAndPaging(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, owner.ID, nil, "Album")

	for i := 0; i < 3; i++ {
		createTestPhoto(t, db, album.ID, owner.ID)
	}

	list, err := ListPhotos(db, owner.ID, owner.Role, nil, nil, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, 2, list.Limit)

	list, err = ListPhotos(db, stranger.ID, stranger.Role, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
	assert.Empty(t, list.Data)
	assert.Equal(t, defaultPhotoLimit, list.Limit)
}

func TestListPhotosAlbumFilterChecksAccess(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleFamilyMember)
	album := createTestAlbum(t, db, owner.ID, nil, "Album")

	_, err := ListPhotos(db, stranger.ID, stranger.Role, &album.ID, nil, 0, 0)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)
}

func TestUpdatePhotoOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)
	album := createTestAlbum(t, db, owner.ID, &family.ID, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	// Family members see the photo but cannot edit its metadata
	_, err := GetPhoto(db, member.ID, member.Role, photo.ID)
	require.NoError(t, err)

	_, err = UpdatePhoto(db, member.ID, photo.ID, PhotoUpdateInput{Caption: strPtr("x")})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)

	view, err := UpdatePhoto(db, owner.ID, photo.ID, PhotoUpdateInput{Caption: strPtr("Bãi biển")})
	require.NoError(t, err)
	require.NotNil(t, view.Caption)
	assert.Equal(t, "Bãi biển", *view.Caption)
}
