package model

import "time"

// Sale is one row of the sale log. ItemName and UnitPrice are copied from the
// catalog when the sale is recorded; later catalog edits never touch them.
// Rows are never updated, only deleted by an explicit staff action.
type Sale struct {
	ID          uint      `gorm:"primaryKey"`
	ItemName    string    `gorm:"type:varchar(80);not null"`
	UnitPrice   int64     `gorm:"not null"`
	Quantity    int64     `gorm:"not null"`
	Total       int64     `gorm:"not null"` // UnitPrice * Quantity
	ShiftNumber *int      `gorm:"index"`    // nil = unassigned
	CreatedAt   time.Time `gorm:"index;not null"`
}

func (Sale) TableName() string { return "sales" }
