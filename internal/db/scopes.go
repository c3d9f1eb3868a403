package db

import "gorm.io/gorm"

// ownedBy restricts a query to rows of one user. Every by-id lookup combines it with
// the id predicate, so a row owned by someone else reads exactly like a missing row.
func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where("user_id = ?", userID)
	}
}

// visibility picks which soft-deleted rows a listing sees: live rows by default,
// only deleted rows when the caller asks for them.
func visibility(query *gorm.DB, deleted bool) *gorm.DB {
	if !deleted {
		return query
	}
	return query.Unscoped().Where("deleted_at IS NOT NULL")
}
