package financing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a price, term or selector is outside the
// defined range. Callers surface it as a validation error, never as a default.
var ErrInvalidInput = errors.New("invalid financing input")

// RateTier binds a down-payment selector to an annual interest rate.
// Selector 99 means "flat $99 down"; every other selector is a percentage of
// the purchase price.
type RateTier struct {
	Selector   int     `json:"selector"`
	AnnualRate float64 `json:"annual_rate"`
}

// RatePolicy is the full financing program: the ordered tier table plus the
// flat fees and floors that apply to every plan. The tier order is load
// bearing, it is the tie-break order for ClosestPlan.
type RatePolicy struct {
	Name            string
	FlatDownPayment decimal.Decimal
	ProcessingFee   decimal.Decimal
	MinimumMonthly  decimal.Decimal
	Tiers           []RateTier
}

// FlatDownSelector is the selector code for the flat $99 down program.
const FlatDownSelector = 99

// StandardPolicy is the financing program offered on every listing:
// $99 flat down at 18% APR, or 20/25/35/50 percent down at 12/8/8/8 percent.
var StandardPolicy = RatePolicy{
	Name:            "standard",
	FlatDownPayment: decimal.NewFromInt(99),
	ProcessingFee:   decimal.NewFromInt(99),
	MinimumMonthly:  decimal.NewFromInt(50),
	Tiers: []RateTier{
		{Selector: 99, AnnualRate: 18},
		{Selector: 20, AnnualRate: 12},
		{Selector: 25, AnnualRate: 8},
		{Selector: 35, AnnualRate: 8},
		{Selector: 50, AnnualRate: 8},
	},
}

// PaymentPlan is the computed financing offer for one (price, selector, term)
// triple. All monetary fields are rounded to cents.
type PaymentPlan struct {
	Selector       int             `json:"selector"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	ProcessingFee  decimal.Decimal `json:"processing_fee"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     float64         `json:"annual_rate"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

func (p RatePolicy) tierFor(selector int) (RateTier, bool) {
	for _, t := range p.Tiers {
		if t.Selector == selector {
			return t, true
		}
	}
	return RateTier{}, false
}

// Calculate produces the payment plan for a purchase price, down-payment
// selector and term. It is pure and deterministic: the same inputs always
// yield the same plan, which is what makes the client preview and the
// server-side authoritative computation agree to the cent.
func (p RatePolicy) Calculate(price decimal.Decimal, selector int, termMonths int) (PaymentPlan, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return PaymentPlan{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}
	if termMonths <= 0 {
		return PaymentPlan{}, fmt.Errorf("%w: term must be positive, got %d", ErrInvalidInput, termMonths)
	}
	tier, ok := p.tierFor(selector)
	if !ok {
		return PaymentPlan{}, fmt.Errorf("%w: unknown down payment selector %d", ErrInvalidInput, selector)
	}

	var downPayment decimal.Decimal
	if selector == FlatDownSelector {
		downPayment = p.FlatDownPayment
	} else {
		downPayment = price.Mul(decimal.NewFromInt(int64(selector))).Div(decimal.NewFromInt(100)).Round(2)
	}

	principal := price.Sub(downPayment).Add(p.ProcessingFee).Round(2)

	// Level-payment amortization. The power term is computed in float64 and
	// the result converted back to decimal for monetary rounding.
	monthlyRate := tier.AnnualRate / 100 / 12
	var payment float64
	if monthlyRate == 0 {
		payment = principal.InexactFloat64() / float64(termMonths)
	} else {
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		payment = principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	}
	if floor := p.MinimumMonthly.InexactFloat64(); payment < floor {
		payment = floor
	}

	// Monthly payment and total are each rounded from the unrounded payment,
	// matching how every call site of the original computed them. The floor
	// can push total collected past the true amortized payoff; the displayed
	// term is not shortened.
	return PaymentPlan{
		Selector:       selector,
		DownPayment:    downPayment,
		ProcessingFee:  p.ProcessingFee,
		Principal:      principal,
		AnnualRate:     tier.AnnualRate,
		TermMonths:     termMonths,
		MonthlyPayment: decimal.NewFromFloat(payment).Round(2),
		TotalAmount:    decimal.NewFromFloat(payment * float64(termMonths)).Round(2),
	}, nil
}

// AllPlans computes the plan for every tier in policy order.
func (p RatePolicy) AllPlans(price decimal.Decimal, termMonths int) ([]PaymentPlan, error) {
	plans := make([]PaymentPlan, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		plan, err := p.Calculate(price, t.Selector, termMonths)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// ClosestPlan returns the tier whose monthly payment is numerically closest
// to the desired payment. Ties keep the earlier tier in policy order. It goes
// through the exact same Calculate path as the primary flow so the number a
// buyer is guided to is the number they will be quoted.
func (p RatePolicy) ClosestPlan(price decimal.Decimal, termMonths int, desiredMonthly decimal.Decimal) (PaymentPlan, error) {
	plans, err := p.AllPlans(price, termMonths)
	if err != nil {
		return PaymentPlan{}, err
	}

	best := plans[0]
	bestDiff := best.MonthlyPayment.Sub(desiredMonthly).Abs()
	for _, plan := range plans[1:] {
		diff := plan.MonthlyPayment.Sub(desiredMonthly).Abs()
		if diff.LessThan(bestDiff) {
			best = plan
			bestDiff = diff
		}
	}
	return best, nil
}

// Calculate runs the standard policy. Most callers want this.
func Calculate(price decimal.Decimal, selector int, termMonths int) (PaymentPlan, error) {
	return StandardPolicy.Calculate(price, selector, termMonths)
}

// AllPlans runs the standard policy for every tier.
func AllPlans(price decimal.Decimal, termMonths int) ([]PaymentPlan, error) {
	return StandardPolicy.AllPlans(price, termMonths)
}

// ClosestPlan runs the standard policy's closest-match search.
func ClosestPlan(price decimal.Decimal, termMonths int, desiredMonthly decimal.Decimal) (PaymentPlan, error) {
	return StandardPolicy.ClosestPlan(price, termMonths, desiredMonthly)
}
