package model

import "time"

// Item is a catalog entry staff pick from when recording a sale.
type Item struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(80);not null"`
	Price     int64  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Item) TableName() string { return "items" }
