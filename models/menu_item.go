package models

import (
	"time"
)

// MenuItem represents an orderable dish on the menu
type MenuItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	ImageS3Key *string   `gorm:"column:image_s3_key" json:"image_s3_key,omitempty"` // nullable, S3 key for an uploaded photo
	ImageURL   *string   `gorm:"-" json:"image_url,omitempty"`                      // computed field, presigned URL for the photo
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
