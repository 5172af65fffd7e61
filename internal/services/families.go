// families.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
)

// FamilyInput carries the fields for creating a family.
type FamilyInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

// FamilyUpdateInput carries partial updates; nil fields are left untouched.
type FamilyUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

// InviteMemberInput identifies the user to invite and the role to grant.
type InviteMemberInput struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=admin member"`
}

// FamilySummary is a family annotated with member and content counts.
type FamilySummary struct {
	models.Family
	MembersCount int64 `json:"members_count"`
	KidsCount    int64 `json:"kids_count"`
	AlbumsCount  int64 `json:"albums_count"`
}

// CreateFamily creates a family and the owner's active membership row in one
// transaction; a family without its owner membership must never exist.
func CreateFamily(db *gorm.DB, userID string, in FamilyInput) (*models.Family, error) {
	family := models.Family{
		Name:        in.Name,
		Description: in.Description,
		AvatarURL:   in.AvatarURL,
		OwnerID:     userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return err
		}
		member := models.FamilyMember{
			FamilyID: family.ID,
			UserID:   userID,
			Role:     models.FamilyRoleOwner,
			Status:   models.MemberStatusActive,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	db.Preload("Owner").Preload("Members.User").First(&family, "id = ?", family.ID)
	return &family, nil
}

// ListFamilies returns the non-deleted families the actor owns or actively
// belongs to, newest first, with counts.
func ListFamilies(db *gorm.DB, userID string) ([]FamilySummary, error) {
	memberOf := db.Model(&models.FamilyMember{}).
		Select("family_id").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive)

	var families []models.Family
	err := db.Where("is_deleted = ?", false).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Preload("Owner").
		Order("created_at DESC").
		Find(&families).Error
	if err != nil {
		return nil, err
	}

	out := make([]FamilySummary, 0, len(families))
	for i := range families {
		summary := FamilySummary{Family: families[i]}
		if err := db.Model(&models.FamilyMember{}).Where("family_id = ?", families[i].ID).
			Count(&summary.MembersCount).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Kid{}).Where("family_id = ?", families[i].ID).
			Count(&summary.KidsCount).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Album{}).Where("family_id = ?", families[i].ID).
			Count(&summary.AlbumsCount).Error; err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetFamily returns one family the actor owns or actively belongs to, with
// its active members.
func GetFamily(db *gorm.DB, userID, familyID string) (*models.Family, error) {
	memberOf := db.Model(&models.FamilyMember{}).
		Select("family_id").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive)

	var family models.Family
	err := db.Where("id = ? AND is_deleted = ?", familyID, false).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Preload("Owner").
		Preload("Members", "status = ?", models.MemberStatusActive).
		Preload("Members.User").
		First(&family).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Family không tồn tại hoặc không có quyền truy cập")
		}
		return nil, err
	}
	return &family, nil
}

// UpdateFamily applies updates. Only the owner or a family-level admin may
// edit; a plain member gets a 403, not a 404.
func UpdateFamily(db *gorm.DB, userID, familyID string, in FamilyUpdateInput) (*models.Family, error) {
	family, err := requireFamilyManager(db, userID, familyID,
		"Chỉ owner hoặc admin mới có thể chỉnh sửa family")
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		family.Name = *in.Name
	}
	if in.Description != nil {
		family.Description = in.Description
	}
	if in.AvatarURL != nil {
		family.AvatarURL = in.AvatarURL
	}

	if err := db.Save(family).Error; err != nil {
		return nil, err
	}

	db.Preload("Owner").Preload("Members.User").First(family, "id = ?", family.ID)
	return family, nil
}

// SoftDeleteFamily marks the family deleted. Owner only; memberships stay but
// grant nothing because every family query filters is_deleted.
func SoftDeleteFamily(db *gorm.DB, userID, familyID string) error {
	var family models.Family
	err := db.Where("id = ? AND owner_id = ? AND is_deleted = ?", familyID, userID, false).
		First(&family).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound("Family không tồn tại hoặc bạn không phải owner")
		}
		return err
	}

	now := timeNow()
	return db.Model(&family).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error
}

// InviteMember invites a user into the family. Re-inviting a pending member
// resets the invitation with the new role; inviting an active member is a 400.
func InviteMember(db *gorm.DB, userID, familyID string, in InviteMemberInput) (*models.FamilyMember, error) {
	if _, err := requireFamilyManager(db, userID, familyID,
		"Chỉ owner hoặc admin mới có thể mời thành viên"); err != nil {
		return nil, err
	}

	var target models.User
	if err := db.Where("id = ?", in.UserID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("User không tồn tại")
		}
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.FamilyRoleMember
	}

	var existing models.FamilyMember
	err := db.Where("family_id = ? AND user_id = ?", familyID, in.UserID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status == models.MemberStatusActive {
			return nil, types.BadRequest("User đã là thành viên của family")
		}
		existing.Role = role
		existing.Status = models.MemberStatusPending
		if err := db.Save(&existing).Error; err != nil {
			return nil, err
		}
		db.Preload("User").First(&existing, "id = ?", existing.ID)
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		member := models.FamilyMember{
			FamilyID: familyID,
			UserID:   in.UserID,
			Role:     role,
			Status:   models.MemberStatusPending,
		}
		if err := db.Create(&member).Error; err != nil {
			return nil, err
		}
		db.Preload("User").First(&member, "id = ?", member.ID)
		return &member, nil
	default:
		return nil, err
	}
}

// AcceptInvitation flips the actor's pending membership to active. Accepting
// twice is a 400; access to family content starts only after this call.
func AcceptInvitation(db *gorm.DB, userID, familyID string) (*models.FamilyMember, error) {
	var invitation models.FamilyMember
	err := db.Where("family_id = ? AND user_id = ?", familyID, userID).First(&invitation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Lời mời không tồn tại")
		}
		return nil, err
	}

	if invitation.Status == models.MemberStatusActive {
		return nil, types.BadRequest("Bạn đã là thành viên của family")
	}

	invitation.Status = models.MemberStatusActive
	if err := db.Save(&invitation).Error; err != nil {
		return nil, err
	}

	db.Preload("Family.Owner").First(&invitation, "id = ?", invitation.ID)
	return &invitation, nil
}

// RemoveMember removes a member by user ID. Owner or family-admin only; the
// owner can never be removed.
func RemoveMember(db *gorm.DB, userID, familyID, memberUserID string) error {
	family, err := requireFamilyManager(db, userID, familyID,
		"Chỉ owner hoặc admin mới có thể xóa thành viên")
	if err != nil {
		return err
	}

	if memberUserID == family.OwnerID {
		return types.BadRequest("Không thể xóa owner khỏi family")
	}

	return db.Where("family_id = ? AND user_id = ?", familyID, memberUserID).
		Delete(&models.FamilyMember{}).Error
}

// LeaveFamily removes the actor's own membership. The owner cannot leave.
func LeaveFamily(db *gorm.DB, userID, familyID string) error {
	var family models.Family
	if err := db.Where("id = ?", familyID).First(&family).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound("Family không tồn tại")
		}
		return err
	}

	if family.OwnerID == userID {
		return types.BadRequest("Owner không thể rời family. Hãy chuyển quyền owner hoặc xóa family")
	}

	return db.Where("family_id = ? AND user_id = ?", familyID, userID).
		Delete(&models.FamilyMember{}).Error
}

// MyInvitations lists the actor's pending invitations with the inviting
// family attached.
func MyInvitations(db *gorm.DB, userID string) ([]models.FamilyMember, error) {
	var invitations []models.FamilyMember
	err := db.Where("user_id = ? AND status = ?", userID, models.MemberStatusPending).
		Preload("Family.Owner").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// requireFamilyManager loads a non-deleted family and verifies the actor is
// its owner or holds an active family-admin membership.
func requireFamilyManager(db *gorm.DB, userID, familyID, forbiddenMsg string) (*models.Family, error) {
	var family models.Family
	err := db.Where("id = ? AND is_deleted = ?", familyID, false).First(&family).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Family không tồn tại")
		}
		return nil, err
	}

	if family.OwnerID == userID {
		return &family, nil
	}

	var member models.FamilyMember
	err = db.Where("family_id = ? AND user_id = ? AND status = ?",
		familyID, userID, models.MemberStatusActive).First(&member).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == gorm.ErrRecordNotFound || member.Role != models.FamilyRoleAdmin {
		return nil, types.Forbidden(forbiddenMsg)
	}
	return &family, nil
}
