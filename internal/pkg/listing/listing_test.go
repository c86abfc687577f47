package listing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/acreworks/landfolio/app/models"
)

func TestGenerateIncludesAllTierPayments(t *testing.T) {
	property := &models.Property{
		Title:   "5 Acres Near Taos",
		County:  "Taos",
		State:   "NM",
		APN:     "123-45-678",
		Acreage: decimal.RequireFromString("5"),
		Price:   decimal.RequireFromString("5000"),
		Images: []models.PropertyImage{
			{PublicURL: "https://img.example/second.jpg"},
			{PublicURL: "https://img.example/first.jpg", IsPrimary: true},
		},
	}

	html, err := Generate(property, 36, "Buy with confidence.")
	if err != nil {
		t.Fatal(err)
	}

	// One row per tier, with the exact calculator numbers.
	for _, payment := range []string{"180.76", "136.15", "120.61", "104.95", "81.44"} {
		if !strings.Contains(html, payment) {
			t.Errorf("listing missing monthly payment %s", payment)
		}
	}
	if !strings.Contains(html, "5000.00") {
		t.Error("listing missing cash price")
	}
	if !strings.Contains(html, "https://img.example/first.jpg") {
		t.Error("listing should use the primary image")
	}
	if !strings.Contains(html, "Buy with confidence.") {
		t.Error("listing missing footer")
	}
}

func TestGenerateRejectsInvalidPrice(t *testing.T) {
	property := &models.Property{Title: "Bad", County: "X", State: "Y", Price: decimal.Zero}
	if _, err := Generate(property, 36, ""); err == nil {
		t.Fatal("expected error for non-positive price")
	}
}
