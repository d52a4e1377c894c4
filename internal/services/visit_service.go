package services

import (
	"dreamboard/internal/db"
	"dreamboard/internal/models"

	"gorm.io/gorm/clause"
)

// RecordVisit stores the IP for the unique-visitor counter. The unique
// index on ip plus ON CONFLICT DO NOTHING makes repeat visits (and
// concurrent first visits from the same IP) no-ops, so there is no
// check-then-insert race.
func RecordVisit(ip string) error {
	if ip == "" {
		return nil
	}
	return db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}},
		DoNothing: true,
	}).Create(&models.UserVisit{IP: ip}).Error
}

// VisitorCount returns the number of distinct IPs ever seen.
func VisitorCount() (int64, error) {
	var count int64
	err := db.DB.Model(&models.UserVisit{}).Count(&count).Error
	return count, err
}
