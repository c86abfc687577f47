package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/acreworks/landfolio/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// PropertyFilter narrows catalog listings.
type PropertyFilter struct {
	State    string
	County   string
	Status   string
	Featured *bool
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// PropertyRepository defines the interface for catalog operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetBySlug(slug string) (*models.Property, error)
	List(filter PropertyFilter, offset, limit int) ([]models.Property, int64, error)
	GetFeatured(limit int) ([]models.Property, error)
	Update(property *models.Property) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	AddImage(image *models.PropertyImage) error
	GetImages(propertyID uint) ([]models.PropertyImage, error)
	DeleteImage(imageID uint) error
}

// LoanRepository defines the interface for loan operations
type LoanRepository interface {
	Create(loan *models.Loan) error
	CreateWithPayments(loan *models.Loan, payments []models.Payment) error
	GetByID(id uint) (*models.Loan, error)
	GetWithPayments(id uint) (*models.Loan, error)
	GetByUserID(userID uint) ([]models.Loan, error)
	GetByPropertyID(propertyID uint) ([]models.Loan, error)
	List(offset, limit int) ([]models.Loan, error)
	Update(loan *models.Loan) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	TotalPrincipal() (decimal.Decimal, error)
}

// PaymentRepository defines the interface for payment operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	// GetByLoanID returns the loan's payments in chronological order; the
	// reconciler depends on that ordering.
	GetByLoanID(loanID uint) ([]models.Payment, error)
	GetLatestByLoanID(loanID uint) (*models.Payment, error)
	Update(payment *models.Payment) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Payment, error)
	TotalCollectedSince(since time.Time) (decimal.Decimal, error)
}

// AuctionRepository defines the interface for acquisition pipeline operations
type AuctionRepository interface {
	Create(auction *models.Auction) error
	GetByID(id uint) (*models.Auction, error)
	List(status string, offset, limit int) ([]models.Auction, error)
	GetUpcoming(within time.Duration) ([]models.Auction, error)
	Update(auction *models.Auction) error
	Delete(id uint) error
	Count() (int64, error)
}

// TaxRepository defines the interface for property-tax operations
type TaxRepository interface {
	Create(record *models.TaxRecord) error
	GetByID(id uint) (*models.TaxRecord, error)
	GetByPropertyID(propertyID uint) ([]models.TaxRecord, error)
	GetDueBefore(deadline time.Time) ([]models.TaxRecord, error)
	Update(record *models.TaxRecord) error
	Delete(id uint) error
}

// ContactRepository defines the interface for contact-form messages
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(offset, limit int) ([]models.ContactMessage, error)
	MarkReplied(id uint) error
	Delete(id uint) error
}

// PageRepository defines the interface for page-related operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetActive() ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
}
