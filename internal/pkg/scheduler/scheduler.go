// Package scheduler runs the nightly housekeeping jobs: late-payment
// notices, property-tax reminders and auction-date reminders.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/acreworks/landfolio/app/models"
	"github.com/acreworks/landfolio/app/repository"
	"github.com/acreworks/landfolio/internal/pkg/mailer"
)

// A loan is flagged late when the last payment is older than this.
const lateAfter = 35 * 24 * time.Hour

// Start registers the cron jobs and starts the scheduler in the background.
func Start(repos *repository.Repositories) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 6 * * *", func() { RunLatePaymentScan(repos) }); err != nil {
		log.Printf("Failed to schedule late payment scan: %v", err)
	}
	if _, err := c.AddFunc("0 7 * * *", func() { RunTaxReminderScan(repos) }); err != nil {
		log.Printf("Failed to schedule tax reminder scan: %v", err)
	}
	if _, err := c.AddFunc("0 8 * * *", func() { RunAuctionReminderScan(repos) }); err != nil {
		log.Printf("Failed to schedule auction reminder scan: %v", err)
	}

	c.Start()
	log.Println("Scheduler started")
	return c
}

// RunLatePaymentScan mails a late notice for every active loan whose most
// recent payment is past the grace window.
func RunLatePaymentScan(repos *repository.Repositories) {
	loans, err := repos.Loan.List(0, 10000)
	if err != nil {
		log.Printf("Late payment scan failed to list loans: %v", err)
		return
	}

	now := time.Now()
	for i := range loans {
		loan := &loans[i]
		if loan.Status != models.LOAN_ACTIVE {
			continue
		}

		last := loan.StartDate
		if latest, err := repos.Payment.GetLatestByLoanID(loan.ID); err == nil {
			last = latest.PaidAt
		}

		overdue := now.Sub(last)
		if overdue < lateAfter {
			continue
		}

		daysLate := int(overdue.Hours()/24) - 30
		if err := mailer.SendLateNotice(loan.User.Email, loan.User.Name, loan.Property.Title, daysLate); err != nil {
			log.Printf("Failed to send late notice for loan %d: %v", loan.ID, err)
		}
	}
}

// RunTaxReminderScan logs and mails reminders for tax bills due in 30 days.
func RunTaxReminderScan(repos *repository.Repositories) {
	records, err := repos.Tax.GetDueBefore(time.Now().AddDate(0, 0, 30))
	if err != nil {
		log.Printf("Tax reminder scan failed: %v", err)
		return
	}

	settings := models.GetAppSettings()
	if settings.ContactEmail == "" {
		log.Printf("Tax reminder scan: %d bills due, no contact email configured", len(records))
		return
	}

	for _, record := range records {
		subject := "Property tax due"
		body := "<p>" + record.Property.Title + ": $" + record.AmountDue.StringFixed(2) +
			" due " + record.DueDate.Format("2006-01-02") + "</p>"
		if err := mailer.SendMail(settings.ContactEmail, subject, body); err != nil {
			log.Printf("Failed to send tax reminder for record %d: %v", record.ID, err)
		}
	}
}

// RunAuctionReminderScan mails a digest of auctions closing within a week.
func RunAuctionReminderScan(repos *repository.Repositories) {
	auctions, err := repos.Auction.GetUpcoming(7 * 24 * time.Hour)
	if err != nil {
		log.Printf("Auction reminder scan failed: %v", err)
		return
	}
	if len(auctions) == 0 {
		return
	}

	settings := models.GetAppSettings()
	if settings.ContactEmail == "" {
		log.Printf("Auction reminder scan: %d auctions upcoming, no contact email configured", len(auctions))
		return
	}

	body := "<p>Auctions closing this week:</p><ul>"
	for _, a := range auctions {
		body += "<li>" + a.County + " County, " + a.State + " — " + a.AuctionAt.Format("2006-01-02") + "</li>"
	}
	body += "</ul>"

	if err := mailer.SendMail(settings.ContactEmail, "Upcoming auctions", body); err != nil {
		log.Printf("Failed to send auction digest: %v", err)
	}
}
