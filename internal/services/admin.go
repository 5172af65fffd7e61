// admin.go
//
// Family photo sharing backend for kids' memories.

package services

import (
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const (
	defaultAdminPageSize = 20
	maxAdminPageSize     = 100
)

// AdminUser is one account row on the admin dashboard with content counts.
type AdminUser struct {
	models.User
	KidsCount   int64 `json:"kids_count"`
	AlbumsCount int64 `json:"albums_count"`
	PhotosCount int64 `json:"photos_count"`
}

// AdminUserPage is one page of dashboard users.
type AdminUserPage struct {
	Data       []AdminUser `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}

// AdminFamilyPage is one page of dashboard families.
type AdminFamilyPage struct {
	Data       []FamilySummary `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int64           `json:"total_pages"`
}

// DashboardStats aggregates platform totals for the admin landing page.
type DashboardStats struct {
	TotalUsers      int64         `json:"total_users"`
	TotalFamilies   int64         `json:"total_families"`
	TotalKids       int64         `json:"total_kids"`
	TotalAlbums     int64         `json:"total_albums"`
	TotalPhotos     int64         `json:"total_photos"`
	TotalMilestones int64         `json:"total_milestones"`
	RecentUsers     []models.User `json:"recent_users"`
}

// UserStats is the caller-scoped content summary behind GET /stats.
type UserStats struct {
	Kids       int64 `json:"kids"`
	Albums     int64 `json:"albums"`
	Photos     int64 `json:"photos"`
	Milestones int64 `json:"milestones"`
	Families   int64 `json:"families"`
}

// AdminListUsers returns one page of live accounts with per-user content
// counts, newest first.
func AdminListUsers(db *gorm.DB, page, limit int) (*AdminUserPage, error) {
	page, limit, offset := adminPage(page, limit)

	var total int64
	err := db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&total).Error
	if err != nil {
		return nil, err
	}

	var users []models.User
	err = db.Clauses(hints.CommentBefore("select", "admin dashboard users")).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	data := make([]AdminUser, 0, len(users))
	for i := range users {
		row := AdminUser{User: users[i]}
		if err := db.Model(&models.Kid{}).Where("created_by = ?", users[i].ID).
			Count(&row.KidsCount).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Album{}).Where("created_by = ?", users[i].ID).
			Count(&row.AlbumsCount).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Photo{}).Where("created_by = ?", users[i].ID).
			Count(&row.PhotosCount).Error; err != nil {
			return nil, err
		}
		data = append(data, row)
	}

	return &AdminUserPage{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pageCount(total, limit),
	}, nil
}

// AdminListFamilies returns one page of live families with owners and counts,
// newest first.
func AdminListFamilies(db *gorm.DB, page, limit int) (*AdminFamilyPage, error) {
	page, limit, offset := adminPage(page, limit)

	var total int64
	err := db.Model(&models.Family{}).Where("is_deleted = ?", false).Count(&total).Error
	if err != nil {
		return nil, err
	}

	var families []models.Family
	err = db.Clauses(hints.CommentBefore("select", "admin dashboard families")).
		Where("is_deleted = ?", false).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&families).Error
	if err != nil {
		return nil, err
	}

	data := make([]FamilySummary, 0, len(families))
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
		data = append(data, summary)
	}

	return &AdminFamilyPage{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pageCount(total, limit),
	}, nil
}

// GetDashboardStats aggregates platform totals and the five newest accounts.
func GetDashboardStats(db *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{}).Where("is_deleted = ?", false)},
		{&stats.TotalFamilies, db.Model(&models.Family{}).Where("is_deleted = ?", false)},
		{&stats.TotalKids, db.Model(&models.Kid{})},
		{&stats.TotalAlbums, db.Model(&models.Album{}).Where("is_deleted = ?", false)},
		{&stats.TotalPhotos, db.Model(&models.Photo{}).Where("is_deleted = ?", false)},
		{&stats.TotalMilestones, db.Model(&models.Milestone{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	err := db.Clauses(hints.CommentBefore("select", "admin dashboard recent users")).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentUsers).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// UpdateUserRole changes an account's platform role. Only known roles are
// accepted; an empty role is a BadRequest, not a silent no-op.
func UpdateUserRole(db *gorm.DB, targetUserID, role string) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleFamilyMember {
		return nil, types.BadRequest("Invalid role")
	}

	var user models.User
	err := db.Where("id = ?", targetUserID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound(msgUserNotFound)
		}
		return nil, err
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// GetUserStats returns the caller-scoped content counts: own records plus
// whatever the active family memberships open up.
func GetUserStats(db *gorm.DB, userID, role string) (*UserStats, error) {
	filter, err := NewAccessFilter(db, userID, role)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{}

	err = db.Model(&models.Kid{}).Scopes(filter.Scope("kids")).Count(&stats.Kids).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Album{}).Scopes(filter.Scope("albums")).
		Where("albums.is_deleted = ?", false).
		Count(&stats.Albums).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Photo{}).
		Joins("JOIN albums ON albums.id = photos.album_id").
		Scopes(filter.Scope("albums")).
		Where("photos.is_deleted = ? AND albums.is_deleted = ?", false, false).
		Count(&stats.Photos).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Milestone{}).
		Joins("JOIN kids ON kids.id = milestones.kid_id").
		Scopes(filter.Scope("kids")).
		Count(&stats.Milestones).Error
	if err != nil {
		return nil, err
	}

	memberOf := db.Model(&models.FamilyMember{}).
		Select("family_id").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive)
	err = db.Model(&models.Family{}).
		Where("is_deleted = ?", false).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Count(&stats.Families).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func adminPage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultAdminPageSize
	}
	if limit > maxAdminPageSize {
		limit = maxAdminPageSize
	}
	return page, limit, (page - 1) * limit
}

func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
