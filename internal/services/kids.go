// kids.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"fmt"
	"time"

	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
)

// timeNow is the injected clock for age computations; tests override it.
var timeNow = time.Now

const msgKidNotFound = "Hồ sơ trẻ không tồn tại hoặc không có quyền truy cập"

// KidInput carries the fields for creating a kid profile.
type KidInput struct {
	Name           string  `json:"name" validate:"required"`
	DateOfBirth    string  `json:"date_of_birth" validate:"required"`
	Gender         *string `json:"gender"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	FamilyID       *string `json:"family_id"`
}

// KidUpdateInput carries partial updates; nil fields are left untouched.
type KidUpdateInput struct {
	Name           *string `json:"name"`
	DateOfBirth    *string `json:"date_of_birth"`
	Gender         *string `json:"gender"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	FamilyID       *string `json:"family_id"`
}

// KidWithAge is a kid annotated with the computed age string.
type KidWithAge struct {
	models.Kid
	Age string `json:"age"`
}

// GrowthInput is one growth log entry.
type GrowthInput struct {
	Date   string   `json:"date" validate:"required"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
	Note   *string  `json:"note"`
}

// GrowthHistoryResult is the growth log of one kid, newest first.
type GrowthHistoryResult struct {
	KidID         string               `json:"kid_id"`
	KidName       string               `json:"kid_name"`
	Age           string               `json:"age"`
	GrowthHistory []models.GrowthEntry `json:"growth_history"`
	TotalEntries  int                  `json:"total_entries"`
}

// CreateKid persists a new kid profile owned by the actor. A family
// reference requires an active membership in that family.
func CreateKid(db *gorm.DB, userID string, in KidInput) (*KidWithAge, error) {
	if in.FamilyID != nil && *in.FamilyID != "" {
		ok, err := HasFamilyAccess(db, userID, *in.FamilyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.Forbidden("Bạn không có quyền thêm trẻ vào family này")
		}
	}

	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, types.BadRequest("Invalid date_of_birth format")
	}

	kid := models.Kid{
		CreatedBy:      userID,
		Name:           in.Name,
		DateOfBirth:    dob,
		Gender:         in.Gender,
		Bio:            in.Bio,
		ProfilePicture: in.ProfilePicture,
	}
	if in.FamilyID != nil && *in.FamilyID != "" {
		kid.FamilyID = in.FamilyID
	}

	if err := db.Create(&kid).Error; err != nil {
		return nil, err
	}

	return &KidWithAge{Kid: kid, Age: ageString(kid.DateOfBirth, timeNow())}, nil
}

// ListKids returns all kids visible to the actor, newest first, each
// annotated with the computed age.
func ListKids(db *gorm.DB, userID, role string) ([]KidWithAge, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var kids []models.Kid
	err = db.Scopes(filter.Scope("kids")).
		Preload("Family").
		Order("created_at DESC").
		Find(&kids).Error
	if err != nil {
		return nil, err
	}

	now := timeNow()
	out := make([]KidWithAge, 0, len(kids))
	for _, kid := range kids {
		out = append(out, KidWithAge{Kid: kid, Age: ageString(kid.DateOfBirth, now)})
	}
	return out, nil
}

// GetKid returns one kid under the access filter. A missing and an
// inaccessible kid are both a 404.
func GetKid(db *gorm.DB, userID, role, kidID string) (*KidWithAge, error) {
	kid, err := findKid(db, userID, role, kidID)
	if err != nil {
		return nil, err
	}
	return &KidWithAge{Kid: *kid, Age: ageString(kid.DateOfBirth, timeNow())}, nil
}

// UpdateKid applies partial updates under the access filter. Moving the kid
// into a different family re-validates membership in the new family.
func UpdateKid(db *gorm.DB, userID, role, kidID string, in KidUpdateInput) (*KidWithAge, error) {
	kid, err := findKid(db, userID, role, kidID)
	if err != nil {
		return nil, err
	}

	if in.FamilyID != nil && *in.FamilyID != "" &&
		(kid.FamilyID == nil || *kid.FamilyID != *in.FamilyID) {
		ok, err := HasFamilyAccess(db, userID, *in.FamilyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.Forbidden("Bạn không có quyền chuyển trẻ vào family này")
		}
	}

	if in.Name != nil {
		kid.Name = *in.Name
	}
	if in.DateOfBirth != nil {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return nil, types.BadRequest("Invalid date_of_birth format")
		}
		kid.DateOfBirth = dob
	}
	if in.Gender != nil {
		kid.Gender = in.Gender
	}
	if in.Bio != nil {
		kid.Bio = in.Bio
	}
	if in.ProfilePicture != nil {
		kid.ProfilePicture = in.ProfilePicture
	}
	if in.FamilyID != nil {
		if *in.FamilyID == "" {
			kid.FamilyID = nil
		} else {
			kid.FamilyID = in.FamilyID
		}
	}

	if err := db.Save(kid).Error; err != nil {
		return nil, err
	}

	return &KidWithAge{Kid: *kid, Age: ageString(kid.DateOfBirth, timeNow())}, nil
}

// DeleteKid hard-deletes a kid with its albums, photos, milestones and growth
// log. Deliberately stricter than the access filter: only the original
// creator or an admin may delete; family members can view and edit only.
func DeleteKid(db *gorm.DB, userID, role, kidID string) error {
	query := db.Where("id = ?", kidID)
	if role != models.RoleAdmin {
		query = query.Where("created_by = ?", userID)
	}

	var kid models.Kid
	if err := query.First(&kid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound(msgKidNotFound)
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := cascadeDeleteAlbums(tx, tx.Model(&models.Album{}).Where("kid_id = ?", kid.ID)); err != nil {
			return err
		}

		var milestoneIDs []string
		if err := tx.Model(&models.Milestone{}).Where("kid_id = ?", kid.ID).Pluck("id", &milestoneIDs).Error; err != nil {
			return err
		}
		if len(milestoneIDs) > 0 {
			if err := tx.Where("milestone_id IN ?", milestoneIDs).Delete(&models.MilestonePhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", milestoneIDs).Delete(&models.Milestone{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("kid_id = ?", kid.ID).Delete(&models.PhotoKidTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kid_id = ?", kid.ID).Delete(&models.GrowthEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&kid).Error
	})
}

// AddGrowthEntry appends one growth entry. The stored history stays ordered
// newest-first no matter the insertion order of historical entries.
func AddGrowthEntry(db *gorm.DB, userID, role, kidID string, in GrowthInput) (*GrowthHistoryResult, error) {
	kid, err := findKid(db, userID, role, kidID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, types.BadRequest("Invalid date format")
	}

	entry := models.GrowthEntry{
		KidID:  kid.ID,
		Date:   date,
		Height: in.Height,
		Weight: in.Weight,
		Note:   in.Note,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}

	return growthHistory(db, kid)
}

// GrowthHistory returns the growth log of one kid, newest first.
func GrowthHistory(db *gorm.DB, userID, role, kidID string) (*GrowthHistoryResult, error) {
	kid, err := findKid(db, userID, role, kidID)
	if err != nil {
		return nil, err
	}
	return growthHistory(db, kid)
}

// SetKidAvatar stores the uploaded profile picture URL.
func SetKidAvatar(db *gorm.DB, userID, role, kidID, avatarURL string) (*KidWithAge, error) {
	kid, err := findKid(db, userID, role, kidID)
	if err != nil {
		return nil, err
	}
	kid.ProfilePicture = &avatarURL
	if err := db.Save(kid).Error; err != nil {
		return nil, err
	}
	return &KidWithAge{Kid: *kid, Age: ageString(kid.DateOfBirth, timeNow())}, nil
}

func findKid(db *gorm.DB, userID, role, kidID string) (*models.Kid, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var kid models.Kid
	err = db.Scopes(filter.Scope("kids")).
		Preload("Family").
		Where("kids.id = ?", kidID).
		First(&kid).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgKidNotFound)
		}
		return nil, err
	}
	return &kid, nil
}

func growthHistory(db *gorm.DB, kid *models.Kid) (*GrowthHistoryResult, error) {
	var entries []models.GrowthEntry
	err := db.Where("kid_id = ?", kid.ID).
		Order("date DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return &GrowthHistoryResult{
		KidID:         kid.ID,
		KidName:       kid.Name,
		Age:           ageString(kid.DateOfBirth, timeNow()),
		GrowthHistory: entries,
		TotalEntries:  len(entries),
	}, nil
}

// ageString renders a calendar-aware age. Months are whole months elapsed:
// the day of month not yet reached means the current month does not count.
func ageString(dateOfBirth, now time.Time) string {
	years := now.Year() - dateOfBirth.Year()
	months := int(now.Month()) - int(dateOfBirth.Month())
	if now.Day() < dateOfBirth.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	if years > 0 {
		return fmt.Sprintf("%d tuổi %d tháng", years, months)
	}
	return fmt.Sprintf("%d tháng", months)
}

// parseDate accepts plain dates and RFC3339 timestamps.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
