package models

// UserVisit keeps one row per distinct client IP ever seen.
// Only the total count is read back; uniqueness is enforced by the
// index, inserts use ON CONFLICT DO NOTHING.
type UserVisit struct {
	ID uint   `gorm:"primaryKey" json:"id"`
	IP string `gorm:"size:45;uniqueIndex;not null" json:"ip"`
}
