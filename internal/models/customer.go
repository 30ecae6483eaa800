package models

import "time"

// Customer entity
type Customer struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	Email     string `gorm:"size:255"`
	Contact   string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
