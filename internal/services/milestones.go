// milestones.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
)

const msgMilestoneNotFound = "Milestone not found or you do not have access"

// MilestoneInput carries the fields for creating a milestone.
type MilestoneInput struct {
	KidID         string   `json:"kid_id" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   *string  `json:"description"`
	MilestoneDate string   `json:"milestone_date" validate:"required"`
	Category      *string  `json:"category"`
	PhotoIDs      []string `json:"photo_ids"`
}

// MilestoneUpdateInput carries partial updates; nil fields are left
// untouched. A non-nil PhotoIDs replaces the whole attachment set.
type MilestoneUpdateInput struct {
	KidID         *string  `json:"kid_id"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	MilestoneDate *string  `json:"milestone_date"`
	Category      *string  `json:"category"`
	PhotoIDs      []string `json:"photo_ids"`
}

// MilestoneSummary is a milestone annotated with its attachment count.
type MilestoneSummary struct {
	models.Milestone
	PhotosCount int64 `json:"photos_count"`
}

// MilestoneDetail is a milestone with its attached photos resolved.
type MilestoneDetail struct {
	models.Milestone
	Photos []models.Photo `json:"photos"`
}

// CreateMilestone records a milestone for a kid under the access filter,
// optionally attaching photos in the same call.
func CreateMilestone(db *gorm.DB, userID, role string, in MilestoneInput) (*MilestoneDetail, error) {
	if _, err := findKid(db, userID, role, in.KidID); err != nil {
		return nil, err
	}

	date, err := parseDate(in.MilestoneDate)
	if err != nil {
		return nil, types.BadRequest("Invalid milestone_date format")
	}

	milestone := models.Milestone{
		KidID:         in.KidID,
		CreatedBy:     userID,
		Title:         in.Title,
		Description:   in.Description,
		MilestoneDate: date,
		Category:      in.Category,
	}
	if err := db.Create(&milestone).Error; err != nil {
		return nil, err
	}

	if len(in.PhotoIDs) > 0 {
		if err := attachPhotosToMilestone(db, userID, milestone.ID, in.PhotoIDs); err != nil {
			return nil, err
		}
	}

	return GetMilestone(db, userID, role, milestone.ID)
}

// ListMilestones returns visible milestones by milestone date descending,
// each with its attachment count. An optional kid filter narrows the list.
func ListMilestones(db *gorm.DB, userID, role string, kidID *string) ([]MilestoneSummary, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	// Milestones carry no family reference of their own; visibility follows
	// the kid they belong to.
	query := db.Model(&models.Milestone{}).
		Joins("JOIN kids ON kids.id = milestones.kid_id").
		Scopes(filter.Scope("kids")).
		Preload("Kid").
		Preload("User")
	if kidID != nil && *kidID != "" {
		if _, err := findKid(db, userID, role, *kidID); err != nil {
			return nil, err
		}
		query = query.Where("milestones.kid_id = ?", *kidID)
	}

	var milestones []models.Milestone
	if err := query.Order("milestone_date DESC").Find(&milestones).Error; err != nil {
		return nil, err
	}

	out := make([]MilestoneSummary, 0, len(milestones))
	for i := range milestones {
		summary := MilestoneSummary{Milestone: milestones[i]}
		err := db.Model(&models.MilestonePhoto{}).
			Where("milestone_id = ?", milestones[i].ID).
			Count(&summary.PhotosCount).Error
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetMilestone returns one milestone under the access filter with its
// attached photos.
func GetMilestone(db *gorm.DB, userID, role, milestoneID string) (*MilestoneDetail, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	var milestone models.Milestone
	err = db.Joins("JOIN kids ON kids.id = milestones.kid_id").
		Scopes(filter.Scope("kids")).
		Preload("Kid").
		Preload("User").
		Where("milestones.id = ?", milestoneID).
		First(&milestone).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgMilestoneNotFound)
		}
		return nil, err
	}

	var photos []models.Photo
	err = db.Joins("JOIN milestone_photos ON milestone_photos.photo_id = photos.id").
		Where("milestone_photos.milestone_id = ?", milestone.ID).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}

	return &MilestoneDetail{Milestone: milestone, Photos: photos}, nil
}

// UpdateMilestone applies updates. Creator only; reassigning the kid requires
// the new kid to be creator-owned as well. A non-nil PhotoIDs replaces the
// attachment set wholesale.
func UpdateMilestone(db *gorm.DB, userID, role, milestoneID string, in MilestoneUpdateInput) (*MilestoneDetail, error) {
	milestone, err := findOwnedMilestone(db, userID, milestoneID)
	if err != nil {
		return nil, err
	}

	if in.KidID != nil && *in.KidID != "" && *in.KidID != milestone.KidID {
		var count int64
		err := db.Model(&models.Kid{}).
			Where("id = ? AND created_by = ?", *in.KidID, userID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, types.NotFound("Kid not found or you do not have access")
		}
		milestone.KidID = *in.KidID
	}

	if in.Title != nil {
		milestone.Title = *in.Title
	}
	if in.Description != nil {
		milestone.Description = in.Description
	}
	if in.MilestoneDate != nil && *in.MilestoneDate != "" {
		date, err := parseDate(*in.MilestoneDate)
		if err != nil {
			return nil, types.BadRequest("Invalid milestone_date format")
		}
		milestone.MilestoneDate = date
	}
	if in.Category != nil {
		milestone.Category = in.Category
	}

	if err := db.Save(milestone).Error; err != nil {
		return nil, err
	}

	if in.PhotoIDs != nil {
		err := db.Where("milestone_id = ?", milestone.ID).
			Delete(&models.MilestonePhoto{}).Error
		if err != nil {
			return nil, err
		}
		if len(in.PhotoIDs) > 0 {
			if err := attachPhotosToMilestone(db, userID, milestone.ID, in.PhotoIDs); err != nil {
				return nil, err
			}
		}
	}

	return GetMilestone(db, userID, role, milestone.ID)
}

// DeleteMilestone hard-deletes a milestone and its photo attachments.
// Creator only.
func DeleteMilestone(db *gorm.DB, userID, milestoneID string) error {
	milestone, err := findOwnedMilestone(db, userID, milestoneID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("milestone_id = ?", milestone.ID).Delete(&models.MilestonePhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(milestone).Error
	})
}

// AttachPhotos adds photos to the milestone. Creator only; already attached
// photos are tolerated.
func AttachPhotos(db *gorm.DB, userID, role, milestoneID string, photoIDs []string) (*MilestoneDetail, error) {
	milestone, err := findOwnedMilestone(db, userID, milestoneID)
	if err != nil {
		return nil, err
	}
	if err := attachPhotosToMilestone(db, userID, milestone.ID, photoIDs); err != nil {
		return nil, err
	}
	return GetMilestone(db, userID, role, milestone.ID)
}

// DetachPhotos removes the named photos from the milestone. Creator only;
// detaching photos that were never attached is a no-op.
func DetachPhotos(db *gorm.DB, userID, role, milestoneID string, photoIDs []string) (*MilestoneDetail, error) {
	milestone, err := findOwnedMilestone(db, userID, milestoneID)
	if err != nil {
		return nil, err
	}

	if len(photoIDs) > 0 {
		err := db.Where("milestone_id = ? AND photo_id IN ?", milestone.ID, photoIDs).
			Delete(&models.MilestonePhoto{}).Error
		if err != nil {
			return nil, err
		}
	}

	return GetMilestone(db, userID, role, milestone.ID)
}

func findOwnedMilestone(db *gorm.DB, userID, milestoneID string) (*models.Milestone, error) {
	var milestone models.Milestone
	err := db.Where("id = ? AND created_by = ?", milestoneID, userID).First(&milestone).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgMilestoneNotFound)
		}
		return nil, err
	}
	return &milestone, nil
}

// attachPhotosToMilestone validates every photo against the actor's albums,
// then inserts the pairs one at a time. An insert that fails because the pair
// already exists is swallowed; any other failure re-raises.
func attachPhotosToMilestone(db *gorm.DB, userID, milestoneID string, photoIDs []string) error {
	photoIDs = dedupe(photoIDs)
	if len(photoIDs) == 0 {
		return nil
	}

	var count int64
	err := db.Model(&models.Photo{}).
		Joins("JOIN albums ON albums.id = photos.album_id").
		Where("photos.id IN ? AND photos.is_deleted = ? AND albums.is_deleted = ? AND albums.created_by = ?",
			photoIDs, false, false, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(photoIDs)) {
		return types.Forbidden("Some photos do not exist or you do not have access")
	}

	for _, photoID := range photoIDs {
		err := db.Create(&models.MilestonePhoto{MilestoneID: milestoneID, PhotoID: photoID}).Error
		if err == nil {
			continue
		}
		var existing int64
		checkErr := db.Model(&models.MilestonePhoto{}).
			Where("milestone_id = ? AND photo_id = ?", milestoneID, photoID).
			Count(&existing).Error
		if checkErr == nil && existing > 0 {
			continue
		}
		return err
	}
	return nil
}
