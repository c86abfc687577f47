package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AUCTION_WATCHING = "watching"
	AUCTION_BIDDING  = "bidding"
	AUCTION_WON      = "won"
	AUCTION_LOST     = "lost"
	AUCTION_ACQUIRED = "acquired"
)

// Auction is one entry in the acquisition pipeline: a county tax-sale parcel
// being watched, bid on, or already won. Once the deed is recorded the entry
// is linked to the catalog property created from it.
type Auction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	County       string          `gorm:"type:varchar(100);index" json:"county" validate:"required,max=100"`
	State        string          `gorm:"type:varchar(50);index" json:"state" validate:"required,max=50"`
	ParcelNumber string          `gorm:"type:varchar(100)" json:"parcel_number" validate:"max=100"`
	Description  string          `gorm:"type:text" json:"description"`
	Acreage      decimal.Decimal `gorm:"type:numeric(10,4)" json:"acreage"`
	OpeningBid   decimal.Decimal `gorm:"type:numeric(12,2)" json:"opening_bid"`
	MaxBid       decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_bid"`
	WinningBid   decimal.Decimal `gorm:"type:numeric(12,2)" json:"winning_bid"`
	AuctionAt    time.Time       `gorm:"type:date;index" json:"auction_at"`
	Status       string          `gorm:"type:varchar(50);default:'watching';index" json:"status" validate:"oneof=watching bidding won lost acquired"`
	Notes        string          `gorm:"type:text" json:"notes"`
	PropertyID   *uint           `gorm:"default:null" json:"property_id,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a *Auction) Validate() error {
	v := validator.New()
	return v.Struct(a)
}
