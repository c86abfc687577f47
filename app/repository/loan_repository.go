package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// loanRepository implements the LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository instance
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(loan *models.Loan) error {
	return r.db.Create(loan).Error
}

// CreateWithPayments persists a loan and its payment batch in one
// transaction. Used by the import wizard's final commit so a half-imported
// loan never becomes visible.
func (r *loanRepository) CreateWithPayments(loan *models.Loan, payments []models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return err
		}
		for i := range payments {
			payments[i].LoanID = loan.ID
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *loanRepository) GetByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Preload("Property").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetWithPayments loads a loan with its payments in chronological order,
// which is the order every reconciliation runs in.
func (r *loanRepository) GetWithPayments(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Preload("Property").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC, id ASC")
		}).
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) GetByUserID(userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Preload("Property").Where("user_id = ?", userID).Order("created_at DESC").Find(&loans).Error
	return loans, err
}

func (r *loanRepository) GetByPropertyID(propertyID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Where("property_id = ?", propertyID).Order("created_at DESC").Find(&loans).Error
	return loans, err
}

func (r *loanRepository) List(offset, limit int) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Preload("Property").Preload("User").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&loans).Error
	return loans, err
}

func (r *loanRepository) Update(loan *models.Loan) error {
	return r.db.Save(loan).Error
}

func (r *loanRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Loan{}).Count(&count).Error
	return count, err
}

func (r *loanRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Loan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// TotalPrincipal sums the original principal across active loans.
func (r *loanRepository) TotalPrincipal() (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&models.Loan{}).
		Where("status = ?", models.LOAN_ACTIVE).
		Select("COALESCE(SUM(principal), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
