package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxRecord tracks one property-tax year for a parcel the company still holds
// title to. The nightly scheduler mails reminders as DueDate approaches.
type TaxRecord struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	PropertyID uint            `gorm:"not null;index:ux_tax_property_year,unique" json:"property_id"`
	Property   Property        `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Year       int             `gorm:"not null;index:ux_tax_property_year,unique" json:"year"`
	AmountDue  decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount_due"`
	AmountPaid decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount_paid"`
	DueDate    time.Time       `gorm:"type:date" json:"due_date"`
	PaidAt     *time.Time      `gorm:"type:date;default:null" json:"paid_at"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// IsPaid reports whether the year is fully settled.
func (t *TaxRecord) IsPaid() bool {
	return t.PaidAt != nil || t.AmountPaid.GreaterThanOrEqual(t.AmountDue)
}
