// access.go
//
// Family photo sharing backend for kids' memories.
//
// The family-access predicate is the load-bearing authorization mechanism of
// the whole service: a record is visible to user U with role R iff R is admin,
// or U created the record, or the record's family_id is one of the families
// where U holds an ACTIVE membership. It is computed fresh per request.

package services

import (
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"gorm.io/gorm"
)

// AccessFilter is the materialized predicate for one actor. Build it once per
// request with NewAccessFilter, then scope any number of queries with it.
type AccessFilter struct {
	UserID    string
	FamilyIDs []string
	admin     bool
}

// NewAccessFilter loads the actor's active family set and returns the
// reusable filter. Pending memberships are excluded by construction.
func NewAccessFilter(db *gorm.DB, userID, role string) (*AccessFilter, error) {
	f := &AccessFilter{UserID: userID, admin: role == models.RoleAdmin}
	if f.admin {
		return f, nil
	}

	ids, err := ActiveFamilyIDs(db, userID)
	if err != nil {
		return nil, err
	}
	f.FamilyIDs = ids
	return f, nil
}

// Admin reports whether the filter is unconstrained.
func (f *AccessFilter) Admin() bool {
	return f.admin
}

// Scope returns a GORM scope restricting a query over table to visible rows.
// The family IN-clause is omitted entirely when the set is empty; an empty
// "IN ()" is not portable across query engines.
func (f *AccessFilter) Scope(table string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.admin {
			return tx
		}
		if len(f.FamilyIDs) == 0 {
			return tx.Where(table+".created_by = ?", f.UserID)
		}
		return tx.Where(table+".created_by = ? OR "+table+".family_id IN ?", f.UserID, f.FamilyIDs)
	}
}

// Allows is the in-memory form of Scope for rows already loaded.
func (f *AccessFilter) Allows(createdBy string, familyID *string) bool {
	if f.admin || createdBy == f.UserID {
		return true
	}
	if familyID == nil {
		return false
	}
	for _, id := range f.FamilyIDs {
		if id == *familyID {
			return true
		}
	}
	return false
}

// ActiveFamilyIDs returns the family IDs where the user holds an active
// membership. Pure read, no side effects.
func ActiveFamilyIDs(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.FamilyMember{}).
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive).
		Pluck("family_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// HasFamilyAccess reports whether an active membership row exists for the
// exact (user, family) pair. An empty family ID is false, not an error.
func HasFamilyAccess(db *gorm.DB, userID, familyID string) (bool, error) {
	if familyID == "" {
		return false, nil
	}
	var count int64
	err := db.Model(&models.FamilyMember{}).
		Where("family_id = ? AND user_id = ? AND status = ?", familyID, userID, models.MemberStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
