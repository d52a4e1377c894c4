package models

import (
	"time"
)

type Thread struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BoardID     uint      `gorm:"not null;index" json:"board_id"`
	Board       Board     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"board"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByIP string    `gorm:"size:45;not null" json:"-"`

	// Not a database column, filled when listing
	PostCount int `gorm:"-" json:"post_count"`
}
