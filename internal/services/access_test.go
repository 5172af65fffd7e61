package services

import (
	"testing"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	stranger := createTestUser(t, db, "stranger@example.com", models.RoleFamilyMember)

	createTestKid(t, db, owner.ID, nil, "Bé An")

	kids, err := ListKids(db, owner.ID, owner.Role)
	require.NoError(t, err)
	assert.Len(t, kids, 1)

	kids, err = ListKids(db, stranger.ID, stranger.Role)
	require.NoError(t, err)
	assert.Empty(t, kids)
}

func TestScopeFamilyMembership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	member := createTestUser(t, db, "member@example.com", models.RoleFamilyMember)

	family := createTestFamily(t, db, owner.ID, "Gia đình")
	addActiveMember(t, db, family.ID, member.ID)

	createTestKid(t, db, owner.ID, &family.ID, "Bé An")

	kids, err := ListKids(db, member.ID, member.Role)
	require.NoError(t, err)
	assert.Len(t, kids, 1, "active member sees family kids")
}

func TestScopePendingMembershipGrantsNothing(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	invited := createTestUser(t, db, "invited@example.com", models.RoleFamilyMember)

	family := createTestFamily(t, db, owner.ID, "Gia đình")
	createTestKid(t, db, owner.ID, &family.ID, "Bé An")

	_, err := InviteMember(db, owner.ID, family.ID, InviteMemberInput{
		UserID: invited.ID,
		Role:   models.FamilyRoleMember,
	})
	require.NoError(t, err)

	kids, err := ListKids(db, invited.ID, invited.Role)
	require.NoError(t, err)
	assert.Empty(t, kids, "pending invitation must not grant access")

	_, err = AcceptInvitation(db, invited.ID, family.ID)
	require.NoError(t, err)

	kids, err = ListKids(db, invited.ID, invited.Role)
	require.NoError(t, err)
	assert.Len(t, kids, 1)
}

func TestScopeAdminBypass(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	createTestKid(t, db, owner.ID, nil, "Bé An")

	kids, err := ListKids(db, admin.ID, admin.Role)
	require.NoError(t, err)
	assert.Len(t, kids, 1, "admin sees everything")
}

func TestAllows(t *testing.T) {
	familyID := "fam-1"
	f := &AccessFilter{UserID: "u1", FamilyIDs: []string{familyID}}

	assert.True(t, f.Allows("u1", nil))
	assert.True(t, f.Allows("u2", &familyID))
	assert.False(t, f.Allows("u2", nil))

	other := "fam-2"
	assert.False(t, f.Allows("u2", &other))

	admin := &AccessFilter{UserID: "u3", admin: true}
	assert.True(t, admin.Allows("u2", nil))
}

func TestHasFamilyAccess(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com", models.RoleFamilyMember)
	family := createTestFamily(t, db, owner.ID, "Gia đình")

	ok, err := HasFamilyAccess(db, owner.ID, family.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasFamilyAccess(db, owner.ID, "")
	require.NoError(t, err)
	assert.False(t, ok, "empty family ID is false, not an error")

	ok, err = HasFamilyAccess(db, "nobody", family.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
