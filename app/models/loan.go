package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/internal/pkg/financing"
)

const (
	LOAN_ACTIVE    = "active"
	LOAN_PAID_OFF  = "paid_off"
	LOAN_DEFAULTED = "defaulted"
	LOAN_CANCELLED = "cancelled"
)

// Loan is an owner-financing contract between a customer and a parcel. The
// monetary terms are produced by the financing calculator at purchase time
// (or entered by an admin during an import) and are immutable afterwards;
// everything derived (balance, splits) is recomputed from the payment rows.
type Loan struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PropertyID     uint            `gorm:"not null;index" json:"property_id"`
	Property       Property        `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Selector       int             `gorm:"default:0" json:"selector"`
	DownPayment    decimal.Decimal `gorm:"type:numeric(12,2)" json:"down_payment"`
	ProcessingFee  decimal.Decimal `gorm:"type:numeric(10,2)" json:"processing_fee"`
	Principal      decimal.Decimal `gorm:"type:numeric(12,2)" json:"principal"`
	AnnualRate     decimal.Decimal `gorm:"type:numeric(5,2)" json:"annual_rate"`
	TermMonths     int             `gorm:"not null" json:"term_months" validate:"required,gt=0"`
	MonthlyPayment decimal.Decimal `gorm:"type:numeric(10,2)" json:"monthly_payment"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status         string          `gorm:"type:varchar(50);default:'active';index" json:"status" validate:"oneof=active paid_off defaulted cancelled"`
	StartDate      time.Time       `gorm:"type:date" json:"start_date"`
	Imported       bool            `gorm:"default:false" json:"imported"`
	Payments       []Payment       `gorm:"foreignKey:LoanID" json:"payments,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (l *Loan) Validate() error {
	v := validator.New()
	return v.Struct(l)
}

// Terms adapts the loan row to the reconciler's loan context.
func (l *Loan) Terms() financing.LoanTerms {
	return financing.LoanTerms{
		Principal:  l.Principal,
		AnnualRate: l.AnnualRate,
	}
}

// NewLoanFromPlan builds a loan row out of a computed payment plan.
func NewLoanFromPlan(userID, propertyID uint, plan financing.PaymentPlan, startDate time.Time) *Loan {
	return &Loan{
		UserID:         userID,
		PropertyID:     propertyID,
		Selector:       plan.Selector,
		DownPayment:    plan.DownPayment,
		ProcessingFee:  plan.ProcessingFee,
		Principal:      plan.Principal,
		AnnualRate:     decimal.NewFromFloat(plan.AnnualRate),
		TermMonths:     plan.TermMonths,
		MonthlyPayment: plan.MonthlyPayment,
		TotalAmount:    plan.TotalAmount,
		Status:         LOAN_ACTIVE,
		StartDate:      startDate,
	}
}
