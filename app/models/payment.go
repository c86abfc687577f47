package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/internal/pkg/financing"
)

const (
	PAYMENT_METHOD_CARD   = "card"
	PAYMENT_METHOD_CHECK  = "check"
	PAYMENT_METHOD_CASH   = "cash"
	PAYMENT_METHOD_IMPORT = "import"

	PAYMENT_COMPLETED = "completed"
	PAYMENT_PENDING   = "pending"
	PAYMENT_FAILED    = "failed"
	PAYMENT_REFUNDED  = "refunded"
)

// Payment is one installment against a loan. Amount is the principal+interest
// portion; tax, HOA and late-fee components ride on top of it. Principal and
// interest are either entered by an admin or computed by the reconciler.
type Payment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	LoanID             uint            `gorm:"not null;index" json:"loan_id"`
	PaidAt             time.Time       `gorm:"type:date;index" json:"paid_at"`
	Amount             decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	PrincipalComponent decimal.Decimal `gorm:"type:numeric(10,2)" json:"principal_component"`
	InterestComponent  decimal.Decimal `gorm:"type:numeric(10,2)" json:"interest_component"`
	TaxComponent       decimal.Decimal `gorm:"type:numeric(10,2)" json:"tax_component"`
	HOAComponent       decimal.Decimal `gorm:"type:numeric(10,2)" json:"hoa_component"`
	LateFeeComponent   decimal.Decimal `gorm:"type:numeric(10,2)" json:"late_fee_component"`
	Method             string          `gorm:"type:varchar(20);default:'card'" json:"method"`
	Status             string          `gorm:"type:varchar(20);default:'completed'" json:"status"`
	Reference          string          `gorm:"type:varchar(100)" json:"reference"`
	Imported           bool            `gorm:"default:false" json:"imported"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Split adapts the payment row to the reconciler's split type.
func (p *Payment) Split() financing.PaymentSplit {
	return financing.PaymentSplit{
		Principal: p.PrincipalComponent,
		Interest:  p.InterestComponent,
	}
}

// Total is the full cash amount collected, components included.
func (p *Payment) Total() decimal.Decimal {
	return p.Amount.Add(p.TaxComponent).Add(p.HOAComponent).Add(p.LateFeeComponent)
}

// SplitsOf maps a chronological payment list to reconciler splits.
func SplitsOf(payments []Payment) []financing.PaymentSplit {
	splits := make([]financing.PaymentSplit, 0, len(payments))
	for i := range payments {
		splits = append(splits, payments[i].Split())
	}
	return splits
}
