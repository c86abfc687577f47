package financing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPaymentFirstPayment(t *testing.T) {
	terms := LoanTerms{Principal: dec("4099"), AnnualRate: dec("12")}

	split, err := SplitPayment(terms, nil, dec("136.12"))
	require.NoError(t, err)

	assert.Equal(t, "40.99", split.Interest.StringFixed(2))
	assert.Equal(t, "95.13", split.Principal.StringFixed(2))

	balance, err := CurrentBalance(terms, []PaymentSplit{split})
	require.NoError(t, err)
	assert.Equal(t, "4003.87", balance.StringFixed(2))
}

func TestSplitPaymentUsesPriorPrincipal(t *testing.T) {
	terms := LoanTerms{Principal: dec("1000"), AnnualRate: dec("12")}
	prior := []PaymentSplit{
		{Principal: dec("100"), Interest: dec("10")},
		{Principal: dec("200"), Interest: dec("8")},
	}

	// Balance before this payment is 1000 - 300 = 700.
	split, err := SplitPayment(terms, prior, dec("57"))
	require.NoError(t, err)

	assert.Equal(t, "7.00", split.Interest.StringFixed(2))
	assert.Equal(t, "50.00", split.Principal.StringFixed(2))
}

func TestSplitPaymentCapsPrincipalAtBalance(t *testing.T) {
	terms := LoanTerms{Principal: dec("100"), AnnualRate: dec("12")}

	split, err := SplitPayment(terms, nil, dec("200"))
	require.NoError(t, err)

	assert.Equal(t, "1.00", split.Interest.StringFixed(2))
	assert.Equal(t, "100.00", split.Principal.StringFixed(2))
}

func TestSplitPaymentClampsNegativeAmortization(t *testing.T) {
	// Interest exceeds the payment: principal is clamped at zero so the
	// balance stays flat instead of growing.
	terms := LoanTerms{Principal: dec("10000"), AnnualRate: dec("12")}

	split, err := SplitPayment(terms, nil, dec("50"))
	require.NoError(t, err)

	assert.Equal(t, "100.00", split.Interest.StringFixed(2))
	assert.True(t, split.Principal.IsZero(), "principal should be clamped at zero, got %s", split.Principal)
}

func TestSplitPaymentMissingLoanContext(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{"zero principal", LoanTerms{Principal: decimal.Zero, AnnualRate: dec("12")}},
		{"zero rate", LoanTerms{Principal: dec("5000"), AnnualRate: decimal.Zero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitPayment(tt.terms, nil, dec("100"))
			assert.ErrorIs(t, err, ErrMissingLoanContext)
		})
	}
}

func TestGenerateScheduleDrainsSmallBalance(t *testing.T) {
	// Three $50 payments against a $60 balance at 12% APR: the second payment
	// is capped by the balance and the third carries zero principal.
	terms := LoanTerms{Principal: dec("60"), AnnualRate: dec("12")}
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	payments, err := GenerateSchedule(terms, nil, start, 3, dec("50"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	assert.Equal(t, "0.60", payments[0].Interest.StringFixed(2))
	assert.Equal(t, "49.40", payments[0].Principal.StringFixed(2))

	assert.Equal(t, "0.11", payments[1].Interest.StringFixed(2))
	assert.Equal(t, "10.60", payments[1].Principal.StringFixed(2))

	assert.True(t, payments[2].Interest.IsZero())
	assert.True(t, payments[2].Principal.IsZero())

	for i, p := range payments {
		want := start.AddDate(0, i, 0)
		assert.True(t, p.Date.Equal(want), "payment %d dated %s, want %s", i, p.Date, want)
	}
}

func TestGenerateScheduleSeedsBalanceFromPrior(t *testing.T) {
	terms := LoanTerms{Principal: dec("5000"), AnnualRate: dec("12")}
	prior := []PaymentSplit{{Principal: dec("1000"), Interest: dec("50")}}
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	payments, err := GenerateSchedule(terms, prior, start, 1, dec("140"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	// Starting balance is 4000, so interest is 40.00.
	assert.Equal(t, "40.00", payments[0].Interest.StringFixed(2))
	assert.Equal(t, "100.00", payments[0].Principal.StringFixed(2))

	// The prior slice is input, not scratch space.
	require.Len(t, prior, 1)
	assert.Equal(t, "1000", prior[0].Principal.String())
}

func TestGenerateScheduleConservation(t *testing.T) {
	// As long as no payment hits the min(...) cap, the principal components
	// sum to exactly what left the balance.
	terms := LoanTerms{Principal: dec("4099"), AnnualRate: dec("12")}
	start := time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)

	payments, err := GenerateSchedule(terms, nil, start, 12, dec("136.15"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	splits := make([]PaymentSplit, 0, len(payments))
	sum := decimal.Zero
	balance := terms.Principal
	for _, p := range payments {
		assert.True(t, p.Principal.LessThanOrEqual(balance),
			"principal %s exceeds balance %s", p.Principal, balance)
		balance = balance.Sub(p.Principal)
		sum = sum.Add(p.Principal)
		splits = append(splits, PaymentSplit{Principal: p.Principal, Interest: p.Interest})
	}

	final, err := CurrentBalance(terms, splits)
	require.NoError(t, err)
	assert.True(t, terms.Principal.Sub(final).Equal(sum),
		"sum of principal %s != original %s - final balance %s", sum, terms.Principal, final)
}

func TestGenerateScheduleCarriesAddOns(t *testing.T) {
	terms := LoanTerms{Principal: dec("2000"), AnnualRate: dec("8")}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	payments, err := GenerateSchedule(terms, nil, start, 2, dec("100"), dec("12.50"), dec("5"))
	require.NoError(t, err)
	require.Len(t, payments, 2)

	for _, p := range payments {
		assert.Equal(t, "12.50", p.Tax.StringFixed(2))
		assert.Equal(t, "5.00", p.HOA.StringFixed(2))
		assert.Equal(t, "117.50", p.Total().StringFixed(2))
	}
}

func TestGenerateScheduleValidation(t *testing.T) {
	terms := LoanTerms{Principal: dec("2000"), AnnualRate: dec("8")}
	start := time.Now()

	_, err := GenerateSchedule(terms, nil, start, 0, dec("100"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSchedule(terms, nil, start, 3, decimal.Zero, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateSchedule(LoanTerms{}, nil, start, 3, dec("100"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrMissingLoanContext)
}

func TestCurrentBalanceMissingContext(t *testing.T) {
	_, err := CurrentBalance(LoanTerms{}, nil)
	assert.ErrorIs(t, err, ErrMissingLoanContext)
}
