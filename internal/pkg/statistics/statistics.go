package statistics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/cache"
)

const (
	cacheKeyDashboard = "statistics:dashboard"
	cacheExpiration   = 5 * time.Minute
)

// DashboardStats are the admin dashboard aggregates.
type DashboardStats struct {
	TotalProperties     int64  `json:"total_properties"`
	AvailableProperties int64  `json:"available_properties"`
	SoldProperties      int64  `json:"sold_properties"`
	TotalUsers          int64  `json:"total_users"`
	ActiveLoans         int64  `json:"active_loans"`
	PaidOffLoans        int64  `json:"paid_off_loans"`
	OpenAuctions        int64  `json:"open_auctions"`
	ReceivablePrincipal string `json:"receivable_principal"`
	CollectedLast30Days string `json:"collected_last_30_days"`
}

// GetDashboardStats returns the aggregates, served from cache when fresh.
func GetDashboardStats(repos *repository.Repositories) (*DashboardStats, error) {
	if cached, err := cache.Get(cacheKeyDashboard); err == nil && cached != "" {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := computeDashboardStats(repos)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := cache.Set(cacheKeyDashboard, string(payload), cacheExpiration); err != nil {
			log.Printf("Failed to cache dashboard stats: %v", err)
		}
	}

	return stats, nil
}

func computeDashboardStats(repos *repository.Repositories) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProperties, err = repos.Property.Count(); err != nil {
		return nil, err
	}
	if stats.AvailableProperties, err = repos.Property.CountByStatus(models.PROPERTY_AVAILABLE); err != nil {
		return nil, err
	}
	if stats.SoldProperties, err = repos.Property.CountByStatus(models.PROPERTY_SOLD); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = repos.User.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveLoans, err = repos.Loan.CountByStatus(models.LOAN_ACTIVE); err != nil {
		return nil, err
	}
	if stats.PaidOffLoans, err = repos.Loan.CountByStatus(models.LOAN_PAID_OFF); err != nil {
		return nil, err
	}
	if stats.OpenAuctions, err = repos.Auction.Count(); err != nil {
		return nil, err
	}

	receivable, err := repos.Loan.TotalPrincipal()
	if err != nil {
		return nil, err
	}
	stats.ReceivablePrincipal = receivable.StringFixed(2)

	collected, err := repos.Payment.TotalCollectedSince(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	stats.CollectedLast30Days = collected.StringFixed(2)

	return stats, nil
}

// InvalidateDashboardCache drops the cached aggregates after writes that
// should show up immediately.
func InvalidateDashboardCache() {
	if err := cache.Delete(cacheKeyDashboard); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}
