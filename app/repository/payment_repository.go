package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByLoanID returns payments oldest first. Balance reconstruction walks
// this list in order, so the ordering is part of the contract.
func (r *paymentRepository) GetByLoanID(loanID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("loan_id = ?", loanID).Order("paid_at ASC, id ASC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetLatestByLoanID(loanID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("loan_id = ?", loanID).Order("paid_at DESC, id DESC").First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Payment{}, id).Error
}

func (r *paymentRepository) List(offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("paid_at DESC, id DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

// TotalCollectedSince sums completed payment amounts after the given time.
func (r *paymentRepository) TotalCollectedSince(since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&models.Payment{}).
		Where("status = ? AND paid_at >= ?", models.PAYMENT_COMPLETED, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
