package models

import (
	"time"
)

// Table represents a physical restaurant table that orders are opened against
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"` // case-sensitive, e.g. "T-01"
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
