package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/acreworks/landfolio/app/models"
)

// auctionRepository implements the AuctionRepository interface
type auctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new auction repository instance
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

func (r *auctionRepository) Create(auction *models.Auction) error {
	return r.db.Create(auction).Error
}

func (r *auctionRepository) GetByID(id uint) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.First(&auction, id).Error
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *auctionRepository) List(status string, offset, limit int) ([]models.Auction, error) {
	query := r.db.Model(&models.Auction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var auctions []models.Auction
	err := query.Order("auction_at ASC").Offset(offset).Limit(limit).Find(&auctions).Error
	return auctions, err
}

// GetUpcoming returns watched or active auctions closing within the window.
func (r *auctionRepository) GetUpcoming(within time.Duration) ([]models.Auction, error) {
	var auctions []models.Auction
	now := time.Now()
	err := r.db.Where("auction_at BETWEEN ? AND ? AND status IN ?",
		now, now.Add(within), []string{models.AUCTION_WATCHING, models.AUCTION_BIDDING}).
		Order("auction_at ASC").
		Find(&auctions).Error
	return auctions, err
}

func (r *auctionRepository) Update(auction *models.Auction) error {
	return r.db.Save(auction).Error
}

func (r *auctionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Auction{}, id).Error
}

func (r *auctionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Auction{}).Count(&count).Error
	return count, err
}
