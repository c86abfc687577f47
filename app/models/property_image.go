package models

import (
	"time"
)

// PropertyImage is one catalog photo of a parcel, stored in object storage.
type PropertyImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	ObjectKey  string    `gorm:"type:varchar(512);not null" json:"-"`
	PublicURL  string    `gorm:"type:varchar(1024);not null" json:"url"`
	FileName   string    `gorm:"type:varchar(255)" json:"file_name"`
	Position   int       `gorm:"default:0" json:"position"`
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
