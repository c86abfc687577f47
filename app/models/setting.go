package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings represents the application settings structure
type AppSettings struct {
	SiteTitle         string `json:"site_title" validate:"required,min=1,max=255"`
	SiteDescription   string `json:"site_description" validate:"max=500"`
	ContactEmail      string `json:"contact_email" validate:"omitempty,email"`
	SalesEnabled      bool   `json:"sales_enabled"`
	DefaultTermMonths int    `json:"default_term_months" validate:"gt=0"`
	ListingFooter     string `json:"listing_footer" validate:"max=2000"`
}

func (s *AppSettings) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

// Global settings instance
var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if appSettings == nil {
		return &AppSettings{
			SiteTitle:         "LandFolio",
			SalesEnabled:      true,
			DefaultTermMonths: 60,
		}
	}
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	appSettings = &AppSettings{
		SiteTitle:         "LandFolio",
		SiteDescription:   "Rural land, owner financed",
		SalesEnabled:      true,
		DefaultTermMonths: 60,
	}

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "site_description":
			appSettings.SiteDescription = setting.Value
		case "contact_email":
			appSettings.ContactEmail = setting.Value
		case "sales_enabled":
			appSettings.SalesEnabled = setting.Value == "true"
		case "default_term_months":
			var months int
			if _, err := fmt.Sscanf(setting.Value, "%d", &months); err == nil && months > 0 {
				appSettings.DefaultTermMonths = months
			}
		case "listing_footer":
			appSettings.ListingFooter = setting.Value
		}
	}

	return nil
}

// SaveSettings validates and persists settings, then refreshes the in-memory copy.
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settingsMap := map[string]string{
		"site_title":          settings.SiteTitle,
		"site_description":    settings.SiteDescription,
		"contact_email":       settings.ContactEmail,
		"sales_enabled":       fmt.Sprintf("%t", settings.SalesEnabled),
		"default_term_months": fmt.Sprintf("%d", settings.DefaultTermMonths),
		"listing_footer":      settings.ListingFooter,
	}

	for key, value := range settingsMap {
		setting := Setting{Key: key, Value: value, Type: "string"}
		err := db.Where("setting_key = ?", key).
			Assign(map[string]interface{}{"value": value}).
			FirstOrCreate(&setting).Error
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	settingsMu.Lock()
	appSettings = settings
	settingsMu.Unlock()

	return nil
}
