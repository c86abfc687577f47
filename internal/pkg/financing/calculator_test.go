package financing

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTiers(t *testing.T) {
	tests := []struct {
		name        string
		price       string
		selector    int
		term        int
		downPayment string
		principal   string
		rate        float64
		monthly     string
		total       string
	}{
		{"flat 99 down", "5000", 99, 36, "99.00", "5000.00", 18, "180.76", "6507.43"},
		{"20 percent down", "5000", 20, 36, "1000.00", "4099.00", 12, "136.15", "4901.24"},
		{"25 percent down", "5000", 25, 36, "1250.00", "3849.00", 8, "120.61", "4342.09"},
		{"35 percent down", "5000", 35, 36, "1750.00", "3349.00", 8, "104.95", "3778.04"},
		{"50 percent down", "5000", 50, 36, "2500.00", "2599.00", 8, "81.44", "2931.96"},
		{"longer term", "10000", 99, 60, "99.00", "10000.00", 18, "253.93", "15236.06"},
		{"short term", "1000", 99, 12, "99.00", "1000.00", 18, "91.68", "1100.16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Calculate(dec(tt.price), tt.selector, tt.term)
			if err != nil {
				t.Fatalf("Calculate returned error: %v", err)
			}
			if got := plan.DownPayment.StringFixed(2); got != tt.downPayment {
				t.Errorf("down payment = %s, want %s", got, tt.downPayment)
			}
			if got := plan.Principal.StringFixed(2); got != tt.principal {
				t.Errorf("principal = %s, want %s", got, tt.principal)
			}
			if plan.AnnualRate != tt.rate {
				t.Errorf("rate = %v, want %v", plan.AnnualRate, tt.rate)
			}
			if got := plan.MonthlyPayment.StringFixed(2); got != tt.monthly {
				t.Errorf("monthly payment = %s, want %s", got, tt.monthly)
			}
			if got := plan.TotalAmount.StringFixed(2); got != tt.total {
				t.Errorf("total amount = %s, want %s", got, tt.total)
			}
		})
	}
}

func TestCalculateMinimumPaymentFloor(t *testing.T) {
	tests := []struct {
		price    string
		selector int
		term     int
		total    string
	}{
		{"500", 50, 60, "3000.00"},
		{"100", 99, 12, "600.00"},
	}

	for _, tt := range tests {
		plan, err := Calculate(dec(tt.price), tt.selector, tt.term)
		if err != nil {
			t.Fatalf("Calculate(%s, %d, %d) returned error: %v", tt.price, tt.selector, tt.term, err)
		}
		if got := plan.MonthlyPayment.StringFixed(2); got != "50.00" {
			t.Errorf("monthly payment = %s, want floor 50.00", got)
		}
		if got := plan.TotalAmount.StringFixed(2); got != tt.total {
			t.Errorf("total amount = %s, want %s", got, tt.total)
		}
	}
}

func TestCalculatePrincipalIdentity(t *testing.T) {
	// principal = (price - downPayment) + processing fee, for every tier.
	price := dec("7350")
	for _, tier := range StandardPolicy.Tiers {
		plan, err := Calculate(price, tier.Selector, 48)
		if err != nil {
			t.Fatalf("Calculate for selector %d: %v", tier.Selector, err)
		}
		want := price.Sub(plan.DownPayment).Add(dec("99"))
		if !plan.Principal.Equal(want) {
			t.Errorf("selector %d: principal = %s, want %s", tier.Selector, plan.Principal, want)
		}
	}
}

func TestCalculateFlatDownIndependentOfPrice(t *testing.T) {
	for _, price := range []string{"450", "5000", "123456.78"} {
		plan, err := Calculate(dec(price), 99, 24)
		if err != nil {
			t.Fatalf("Calculate(%s, 99, 24): %v", price, err)
		}
		if got := plan.DownPayment.StringFixed(2); got != "99.00" {
			t.Errorf("price %s: down payment = %s, want 99.00", price, got)
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	a, err := Calculate(dec("8999.99"), 25, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(dec("8999.99"), 25, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different plans: %+v vs %+v", a, b)
	}
}

func TestCalculateInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		selector int
		term     int
	}{
		{"zero price", "0", 99, 36},
		{"negative price", "-100", 20, 36},
		{"zero term", "5000", 20, 0},
		{"negative term", "5000", 20, -12},
		{"unknown selector", "5000", 30, 36},
		{"zero selector", "5000", 0, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(dec(tt.price), tt.selector, tt.term)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAllPlansOrder(t *testing.T) {
	plans, err := AllPlans(dec("5000"), 36)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{99, 20, 25, 35, 50}
	if len(plans) != len(want) {
		t.Fatalf("got %d plans, want %d", len(plans), len(want))
	}
	for i, sel := range want {
		if plans[i].Selector != sel {
			t.Errorf("plans[%d].Selector = %d, want %d", i, plans[i].Selector, sel)
		}
	}
}

func TestClosestPlanExactMatch(t *testing.T) {
	// A desired payment equal to one tier's computed payment returns that tier.
	for _, tier := range StandardPolicy.Tiers {
		plan, err := Calculate(dec("5000"), tier.Selector, 36)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ClosestPlan(dec("5000"), 36, plan.MonthlyPayment)
		if err != nil {
			t.Fatal(err)
		}
		if got.Selector != tier.Selector {
			t.Errorf("desired %s: got selector %d, want %d", plan.MonthlyPayment, got.Selector, tier.Selector)
		}
	}
}

func TestClosestPlanTieKeepsEarlierTier(t *testing.T) {
	// 5000 over 36 months: tier 25 pays 120.61, tier 35 pays 104.95.
	// 112.78 is equidistant from both; the earlier tier in policy order wins.
	got, err := ClosestPlan(dec("5000"), 36, dec("112.78"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Selector != 25 {
		t.Errorf("tie broke to selector %d, want 25", got.Selector)
	}
}

func TestClosestPlanInvalidInput(t *testing.T) {
	if _, err := ClosestPlan(dec("0"), 36, dec("100")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestZeroRatePolicyEvenSplit(t *testing.T) {
	policy := StandardPolicy
	policy.Tiers = []RateTier{{Selector: 50, AnnualRate: 0}}
	plan, err := policy.Calculate(dec("2000"), 50, 10)
	if err != nil {
		t.Fatal(err)
	}
	// (2000 - 1000 + 99) / 10
	if got := plan.MonthlyPayment.StringFixed(2); got != "109.90" {
		t.Errorf("monthly payment = %s, want 109.90", got)
	}
}
