package financing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMissingLoanContext is returned when a reconciliation is attempted before
// the loan's principal and rate are known. The import wizard blocks on it.
var ErrMissingLoanContext = errors.New("loan amount and interest rate are required for calculation")

// LoanTerms is the loan context every reconciliation runs against.
type LoanTerms struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
}

func (t LoanTerms) monthlyRate() decimal.Decimal {
	return t.AnnualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
}

func (t LoanTerms) validate() error {
	if t.Principal.LessThanOrEqual(decimal.Zero) || t.AnnualRate.LessThanOrEqual(decimal.Zero) {
		return ErrMissingLoanContext
	}
	return nil
}

// PaymentSplit is one historical payment's principal/interest breakdown.
type PaymentSplit struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// ImportedPayment is one reconciled (or synthesized) payment row, ready to be
// appended to a pending import batch. Amount is the principal+interest
// portion; Tax and HOA are recorded add-ons on top of it.
type ImportedPayment struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Tax       decimal.Decimal `json:"tax"`
	HOA       decimal.Decimal `json:"hoa"`
}

// Total is the full cash amount of the payment including add-ons.
func (p ImportedPayment) Total() decimal.Decimal {
	return p.Amount.Add(p.Tax).Add(p.HOA)
}

func balanceAfter(terms LoanTerms, prior []PaymentSplit) decimal.Decimal {
	balance := terms.Principal
	for _, p := range prior {
		balance = balance.Sub(p.Principal)
	}
	return balance
}

// SplitPayment recomputes a single payment's principal/interest components
// against the balance left after the preceding payments. The prior list is
// order dependent and must be chronological; it is treated as read-only.
//
// Principal is capped at the remaining balance so an over- or final payment
// never drives the balance negative, and clamped at zero when interest
// exceeds the payment amount so negative amortization never silently grows
// the balance.
func SplitPayment(terms LoanTerms, prior []PaymentSplit, amount decimal.Decimal) (PaymentSplit, error) {
	if err := terms.validate(); err != nil {
		return PaymentSplit{}, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentSplit{}, fmt.Errorf("%w: payment amount must be positive, got %s", ErrInvalidInput, amount)
	}

	balance := balanceAfter(terms, prior)
	if balance.LessThan(decimal.Zero) {
		balance = decimal.Zero
	}

	interest := balance.Mul(terms.monthlyRate()).Round(2)
	principal := amount.Sub(interest)
	if principal.GreaterThan(balance) {
		principal = balance
	}
	if principal.LessThan(decimal.Zero) {
		principal = decimal.Zero
	}

	return PaymentSplit{Principal: principal.Round(2), Interest: interest}, nil
}

// GenerateSchedule synthesizes count monthly payments of a flat amount,
// starting at start, splitting each one against the declining balance. Any
// already-recorded payments reduce the starting balance first. The returned
// entries are fresh records; nothing passed in is mutated.
func GenerateSchedule(terms LoanTerms, prior []PaymentSplit, start time.Time, count int, amount, tax, hoa decimal.Decimal) ([]ImportedPayment, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: payment count must be positive, got %d", ErrInvalidInput, count)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", ErrInvalidInput, amount)
	}

	splits := make([]PaymentSplit, len(prior))
	copy(splits, prior)

	payments := make([]ImportedPayment, 0, count)
	for i := 0; i < count; i++ {
		split, err := SplitPayment(terms, splits, amount)
		if err != nil {
			return nil, err
		}
		payments = append(payments, ImportedPayment{
			Date:      start.AddDate(0, i, 0),
			Amount:    amount,
			Principal: split.Principal,
			Interest:  split.Interest,
			Tax:       tax,
			HOA:       hoa,
		})
		splits = append(splits, split)
	}
	return payments, nil
}

// CurrentBalance recomputes the loan balance from the full payment history.
// It is recomputed on every call rather than cached; payment counts are
// bounded by the loan term, so the O(n) walk is nothing.
func CurrentBalance(terms LoanTerms, payments []PaymentSplit) (decimal.Decimal, error) {
	if err := terms.validate(); err != nil {
		return decimal.Decimal{}, err
	}
	return balanceAfter(terms, payments).Round(2), nil
}
