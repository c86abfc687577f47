package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ContactMessage is a public contact-form submission, optionally tied to the
// parcel the visitor was looking at.
type ContactMessage struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email      string         `gorm:"type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Phone      string         `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Subject    string         `gorm:"type:varchar(255)" json:"subject" validate:"max=255"`
	Body       string         `gorm:"type:text" json:"body" validate:"required,min=5"`
	PropertyID *uint          `gorm:"default:null;index" json:"property_id,omitempty"`
	RepliedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"replied_at,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *ContactMessage) Validate() error {
	v := validator.New()
	return v.Struct(m)
}
