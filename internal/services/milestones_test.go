package services

import (
	"testing"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMilestoneWithPhotos(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "Những bước đi đầu tiên",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photo.ID},
	})
	require.NoError(t, err)
	require.Len(t, detail.Photos, 1)
	assert.Equal(t, photo.ID, detail.Photos[0].ID)
	assert.Equal(t, "2023-04-01", detail.MilestoneDate.Format("2006-01-02"))
}

func TestCreateMilestoneBadDate(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")

	_, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "01/04/2023",
	})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 400, ce.Code)
}

func TestMilestoneVisibilityFollowsKid(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)
	kid := createTestKid(t, db, owner.ID, &family.ID, "Bé An")

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First words",
		MilestoneDate: "2023-08-01",
	})
	require.NoError(t, err)

	// Family membership on the kid grants read access
	_, err = GetMilestone(db, member.ID, member.Role, detail.ID)
	require.NoError(t, err)

	list, err := ListMilestones(db, member.ID, member.Role, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = GetMilestone(db, stranger.ID, stranger.Role, detail.ID)
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)
}

func TestListMilestonesNewestFirstWithCounts(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	older, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First smile",
		MilestoneDate: "2022-06-01",
	})
	require.NoError(t, err)
	newer, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photo.ID},
	})
	require.NoError(t, err)

	list, err := ListMilestones(db, owner.ID, owner.Role, &kid.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, int64(1), list[0].PhotosCount)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Zero(t, list[1].PhotosCount)
}

func TestAttachPhotosRequiresAlbumOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)

	kid := createTestKid(t, db, owner.ID, &family.ID, "Bé An")
	memberAlbum := createTestAlbum(t, db, member.ID, &family.ID, "Member album")
	memberPhoto := createTestPhoto(t, db, memberAlbum.ID, member.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
	})
	require.NoError(t, err)

	// The photo lives in a family member's album; the milestone creator
	// does not own that album, so the attach is refused.
	_, err = AttachPhotos(db, owner.ID, owner.Role, detail.ID, []string{memberPhoto.ID})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 403, ce.Code)
	assert.Equal(t, "Some photos do not exist or you do not have access", ce.Message)
}

func TestAttachPhotosToleratesDuplicates(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photo.ID},
	})
	require.NoError(t, err)

	// Attaching an already attached photo is a no-op
	detail, err = AttachPhotos(db, owner.ID, owner.Role, detail.ID, []string{photo.ID, photo.ID})
	require.NoError(t, err)
	assert.Len(t, detail.Photos, 1)

	var rows int64
	db.Model(&models.MilestonePhoto{}).Where("milestone_id = ?", detail.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestDetachPhotosUnknownIsNoop(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photo.ID},
	})
	require.NoError(t, err)

	detail, err = DetachPhotos(db, owner.ID, owner.Role, detail.ID, []string{"missing-id"})
	require.NoError(t, err)
	assert.Len(t, detail.Photos, 1)

	detail, err = DetachPhotos(db, owner.ID, owner.Role, detail.ID, []string{photo.ID})
	require.NoError(t, err)
	assert.Empty(t, detail.Photos)
}

func TestUpdateMilestoneReplacesAttachments(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photoA := createTestPhoto(t, db, album.ID, owner.ID)
	photoB := createTestPhoto(t, db, album.ID, owner.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photoA.ID},
	})
	require.NoError(t, err)

	// Nil PhotoIDs leaves the attachment set alone
	detail, err = UpdateMilestone(db, owner.ID, owner.Role, detail.ID, MilestoneUpdateInput{
		Title: strPtr("Những bước đi đầu tiên"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Những bước đi đầu tiên", detail.Title)
	require.Len(t, detail.Photos, 1)
	assert.Equal(t, photoA.ID, detail.Photos[0].ID)

	// Non-nil PhotoIDs replaces it wholesale
	detail, err = UpdateMilestone(db, owner.ID, owner.Role, detail.ID, MilestoneUpdateInput{
		PhotoIDs: []string{photoB.ID},
	})
	require.NoError(t, err)
	require.Len(t, detail.Photos, 1)
	assert.Equal(t, photoB.ID, detail.Photos[0].ID)

	// An empty non-nil slice clears everything
	detail, err = UpdateMilestone(db, owner.ID, owner.Role, detail.ID, MilestoneUpdateInput{
		PhotoIDs: []string{},
	})
	require.NoError(t, err)
	assert.Empty(t, detail.Photos)
}

func TestUpdateMilestoneCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)
	kid := createTestKid(t, db, owner.ID, &family.ID, "Bé An")

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
	})
	require.NoError(t, err)

	// Visible to the member, but not editable
	_, err = GetMilestone(db, member.ID, member.Role, detail.ID)
	require.NoError(t, err)

	_, err = UpdateMilestone(db, member.ID, member.Role, detail.ID, MilestoneUpdateInput{
		Title: strPtr("x"),
	})
	require.Error(t, err)
	ce, ok := types.AsCustom(err)
	require.True(t, ok)
	assert.Equal(t, 404, ce.Code)
}

func TestDeleteMilestoneRemovesAttachments(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	kid := createTestKid(t, db, owner.ID, nil, "Bé An")
	album := createTestAlbum(t, db, owner.ID, nil, "Album")
	photo := createTestPhoto(t, db, album.ID, owner.ID)

	detail, err := CreateMilestone(db, owner.ID, owner.Role, MilestoneInput{
		KidID:         kid.ID,
		Title:         "First steps",
		MilestoneDate: "2023-04-01",
		PhotoIDs:      []string{photo.ID},
	})
	require.NoError(t, err)

	require.NoError(t, DeleteMilestone(db, owner.ID, detail.ID))

	var count int64
	db.Model(&models.Milestone{}).Where("id = ?", detail.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.MilestonePhoto{}).Where("milestone_id = ?", detail.ID).Count(&count)
	assert.Zero(t, count)

	// The photo itself is untouched
	db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
