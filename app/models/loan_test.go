package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acreworks/landfolio/internal/pkg/financing"
)

func TestNewLoanFromPlan(t *testing.T) {
	plan, err := financing.Calculate(decimal.RequireFromString("5000"), 20, 36)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	loan := NewLoanFromPlan(7, 12, plan, start)

	if loan.UserID != 7 || loan.PropertyID != 12 {
		t.Errorf("loan owner = (%d, %d), want (7, 12)", loan.UserID, loan.PropertyID)
	}
	if loan.Status != LOAN_ACTIVE {
		t.Errorf("status = %s, want %s", loan.Status, LOAN_ACTIVE)
	}
	if got := loan.Principal.StringFixed(2); got != "4099.00" {
		t.Errorf("principal = %s, want 4099.00", got)
	}
	if got := loan.AnnualRate.StringFixed(2); got != "12.00" {
		t.Errorf("rate = %s, want 12.00", got)
	}
	if !loan.MonthlyPayment.Equal(plan.MonthlyPayment) {
		t.Errorf("monthly payment = %s, want %s", loan.MonthlyPayment, plan.MonthlyPayment)
	}

	// Terms round-trips into the reconciler's context.
	terms := loan.Terms()
	if !terms.Principal.Equal(loan.Principal) || !terms.AnnualRate.Equal(loan.AnnualRate) {
		t.Errorf("Terms() = %+v does not match loan row", terms)
	}
}

func TestSplitsOfPreservesOrder(t *testing.T) {
	payments := []Payment{
		{PrincipalComponent: decimal.RequireFromString("95.13"), InterestComponent: decimal.RequireFromString("40.99")},
		{PrincipalComponent: decimal.RequireFromString("96.08"), InterestComponent: decimal.RequireFromString("40.04")},
	}

	splits := SplitsOf(payments)
	if len(splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(splits))
	}
	if !splits[0].Principal.Equal(payments[0].PrincipalComponent) {
		t.Errorf("splits[0] out of order: %s", splits[0].Principal)
	}
	if !splits[1].Interest.Equal(payments[1].InterestComponent) {
		t.Errorf("splits[1] out of order: %s", splits[1].Interest)
	}
}

func TestPaymentTotal(t *testing.T) {
	p := Payment{
		Amount:           decimal.RequireFromString("136.12"),
		TaxComponent:     decimal.RequireFromString("12.50"),
		HOAComponent:     decimal.RequireFromString("5.00"),
		LateFeeComponent: decimal.RequireFromString("10.00"),
	}
	if got := p.Total().StringFixed(2); got != "163.62" {
		t.Errorf("total = %s, want 163.62", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mohave County AZ 1.25 Acres", "mohave-county-az-1-25-acres"},
		{"  Costilla, CO -- 5 ac  ", "costilla-co-5-ac"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
