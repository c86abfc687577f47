package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// taxRepository implements the TaxRepository interface
type taxRepository struct {
	db *gorm.DB
}

// NewTaxRepository creates a new tax repository instance
func NewTaxRepository(db *gorm.DB) TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) Create(record *models.TaxRecord) error {
	return r.db.Create(record).Error
}

func (r *taxRepository) GetByID(id uint) (*models.TaxRecord, error) {
	var record models.TaxRecord
	err := r.db.Preload("Property").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *taxRepository) GetByPropertyID(propertyID uint) ([]models.TaxRecord, error) {
	var records []models.TaxRecord
	err := r.db.Where("property_id = ?", propertyID).Order("year DESC").Find(&records).Error
	return records, err
}

// GetDueBefore returns unpaid tax years due before the deadline.
func (r *taxRepository) GetDueBefore(deadline time.Time) ([]models.TaxRecord, error) {
	var records []models.TaxRecord
	err := r.db.Preload("Property").
		Where("paid_at IS NULL AND due_date <= ?", deadline).
		Order("due_date ASC").
		Find(&records).Error
	return records, err
}

func (r *taxRepository) Update(record *models.TaxRecord) error {
	return r.db.Save(record).Error
}

func (r *taxRepository) Delete(id uint) error {
	return r.db.Delete(&models.TaxRecord{}, id).Error
}
