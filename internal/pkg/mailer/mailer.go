package mailer

import (
	"fmt"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/acreworks/landfolio/internal/pkg/env"
)

// SendMail delivers an HTML email through the configured SMTP relay.
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port, err := strconv.Atoi(env.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = "no-reply@localhost"
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("SMTP send error: %v", err)
		return err
	}

	log.Printf("Email sent to %s via %s:%d", to, host, port)
	return nil
}

// SendActivationMail sends the account activation link.
func SendActivationMail(to string, name string, token string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000")
	link := fmt.Sprintf("%s/activate?token=%s", base, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to LandFolio. Please confirm your email address:</p><p><a href=%q>Activate my account</a></p>",
		name, link,
	)
	return SendMail(to, "Activate your LandFolio account", body)
}

// SendPaymentReceipt sends a receipt after a successful installment.
func SendPaymentReceipt(to string, name string, amount string, balance string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your payment of $%s. Your remaining balance is $%s.</p><p>Thank you!</p>",
		name, amount, balance,
	)
	return SendMail(to, "Payment received", body)
}

// SendLateNotice nudges a borrower whose installment is overdue.
func SendLateNotice(to string, name string, propertyTitle string, daysLate int) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Our records show the monthly payment on %s is %d days past due. Please log in to your account to bring the loan current.</p>",
		name, propertyTitle, daysLate,
	)
	return SendMail(to, "Payment past due", body)
}
