package models

type Board struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;unique" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	IsStatic    bool   `gorm:"default:false" json:"is_static"` // seeded boards, never removed

	// Not a database column, filled when listing
	ThreadCount int `gorm:"-" json:"thread_count"`
}
