package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) List(offset, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *contactRepository) MarkReplied(id uint) error {
	return r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("replied_at", time.Now()).Error
}

func (r *contactRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContactMessage{}, id).Error
}
