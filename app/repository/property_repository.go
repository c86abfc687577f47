package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) GetBySlug(slug string) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("slug = ?", slug).First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) applyFilter(filter PropertyFilter) *gorm.DB {
	query := r.db.Model(&models.Property{})
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.County != "" {
		query = query.Where("county = ?", filter.County)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.MinPrice.GreaterThan(decimal.Zero) {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice.GreaterThan(decimal.Zero) {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	return query
}

// List returns a filtered catalog page plus the total match count.
func (r *propertyRepository) List(filter PropertyFilter, offset, limit int) ([]models.Property, int64, error) {
	var total int64
	if err := r.applyFilter(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := r.applyFilter(filter).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("featured DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&properties).Error
	return properties, total, err
}

func (r *propertyRepository) GetFeatured(limit int) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Preload("Images").
		Where("featured = ? AND status = ?", true, models.PROPERTY_AVAILABLE).
		Order("created_at DESC").Limit(limit).
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

func (r *propertyRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Property{}).Where("id = ?", id).Update("status", status).Error
}

func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}

func (r *propertyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Count(&count).Error
	return count, err
}

func (r *propertyRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *propertyRepository) AddImage(image *models.PropertyImage) error {
	return r.db.Create(image).Error
}

func (r *propertyRepository) GetImages(propertyID uint) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := r.db.Where("property_id = ?", propertyID).Order("position ASC, id ASC").Find(&images).Error
	return images, err
}

func (r *propertyRepository) DeleteImage(imageID uint) error {
	return r.db.Delete(&models.PropertyImage{}, imageID).Error
}
