package identity

import "gorm.io/gorm"

// ForUser returns a GORM scope that filters dependent rows by owner.
func ForUser(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// FirstInserted orders by primary key so First returns the oldest row.
func FirstInserted(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
