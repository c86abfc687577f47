package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PROPERTY_AVAILABLE = "available"
	PROPERTY_PENDING   = "pending"
	PROPERTY_SOLD      = "sold"
	PROPERTY_HIDDEN    = "hidden"
)

// Property is a land parcel offered for sale or owner financing.
type Property struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UUID         string          `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Title        string          `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Slug         string          `gorm:"type:varchar(255);uniqueIndex" json:"slug" validate:"required,min=3,max=255"`
	Description  string          `gorm:"type:text" json:"description"`
	County       string          `gorm:"type:varchar(100);index" json:"county" validate:"required,max=100"`
	State        string          `gorm:"type:varchar(50);index" json:"state" validate:"required,max=50"`
	APN          string          `gorm:"type:varchar(100);index" json:"apn" validate:"max=100"`
	Acreage      decimal.Decimal `gorm:"type:numeric(10,4)" json:"acreage"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Latitude     float64         `gorm:"type:double precision;default:0" json:"latitude"`
	Longitude    float64         `gorm:"type:double precision;default:0" json:"longitude"`
	Status       string          `gorm:"type:varchar(50);default:'available';index" json:"status" validate:"oneof=available pending sold hidden"`
	Featured     bool            `gorm:"default:false" json:"featured"`
	RoadAccess   bool            `gorm:"default:false" json:"road_access"`
	AnnualTaxes  decimal.Decimal `gorm:"type:numeric(10,2)" json:"annual_taxes"`
	AnnualHOA    decimal.Decimal `gorm:"type:numeric(10,2)" json:"annual_hoa"`
	Images       []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Property) Validate() error {
	v := validator.New()
	if err := v.Struct(p); err != nil {
		return err
	}
	if p.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("price must be positive")
	}
	return nil
}

// BeforeCreate assigns a UUID and derives a slug if none was provided.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = Slugify(fmt.Sprintf("%s %s %s", p.County, p.State, p.Title))
	}
	return nil
}

// IsAvailable reports whether the parcel can still be purchased.
func (p *Property) IsAvailable() bool {
	return p.Status == PROPERTY_AVAILABLE
}

// Slugify lowercases and dash-joins a title for use in catalog URLs.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
