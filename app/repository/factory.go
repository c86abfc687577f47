package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles every repository implementation.
type Repositories struct {
	User     UserRepository
	Property PropertyRepository
	Loan     LoanRepository
	Payment  PaymentRepository
	Auction  AuctionRepository
	Tax      TaxRepository
	Contact  ContactRepository
	Page     PageRepository
	Setting  SettingRepository
}

// NewRepositories creates all repository instances against one DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Property: NewPropertyRepository(db),
		Loan:     NewLoanRepository(db),
		Payment:  NewPaymentRepository(db),
		Auction:  NewAuctionRepository(db),
		Tax:      NewTaxRepository(db),
		Contact:  NewContactRepository(db),
		Page:     NewPageRepository(db),
		Setting:  NewSettingRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

func (f *Factory) GetUserRepository() UserRepository         { return f.GetRepositories().User }
func (f *Factory) GetPropertyRepository() PropertyRepository { return f.GetRepositories().Property }
func (f *Factory) GetLoanRepository() LoanRepository         { return f.GetRepositories().Loan }
func (f *Factory) GetPaymentRepository() PaymentRepository   { return f.GetRepositories().Payment }
func (f *Factory) GetAuctionRepository() AuctionRepository   { return f.GetRepositories().Auction }
func (f *Factory) GetTaxRepository() TaxRepository           { return f.GetRepositories().Tax }
func (f *Factory) GetContactRepository() ContactRepository   { return f.GetRepositories().Contact }
func (f *Factory) GetPageRepository() PageRepository         { return f.GetRepositories().Page }
func (f *Factory) GetSettingRepository() SettingRepository   { return f.GetRepositories().Setting }

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory
func GetGlobalFactory() *Factory {
	return globalFactory
}
