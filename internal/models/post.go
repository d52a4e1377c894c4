package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ThreadID    uint      `gorm:"not null;index" json:"thread_id"`
	Thread      Thread    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"thread"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Image       *string   `gorm:"size:255" json:"image"` // stored filename, nil when no image
	CreatedAt   time.Time `json:"created_at"`
	CreatedByIP string    `gorm:"size:45;not null" json:"-"`
}
