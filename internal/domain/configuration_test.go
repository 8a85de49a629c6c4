package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLifePlan_WithDefaults(t *testing.T) {
	terms := LifePlan{MonthlySurplus: decimal.NewFromInt(50000)}.WithDefaults()

	if !terms.LoanRatePercent.Equal(DefaultLoanRatePercent) {
		t.Errorf("Expected default loan rate, got %s", terms.LoanRatePercent)
	}
	if !terms.NisaRatePercent.Equal(DefaultNisaRatePercent) {
		t.Errorf("Expected default NISA rate, got %s", terms.NisaRatePercent)
	}
	if terms.Years != DefaultComparisonYears {
		t.Errorf("Expected %d years, got %d", DefaultComparisonYears, terms.Years)
	}
	if !terms.MonthlySurplus.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected surplus 50000, got %s", terms.MonthlySurplus)
	}
}

func TestLifePlan_WithDefaultsKeepsExplicitZero(t *testing.T) {
	zero := decimal.Zero
	years := 0
	terms := LifePlan{LoanRatePercent: &zero, NisaRatePercent: &zero, ComparisonYears: &years}.WithDefaults()

	if !terms.LoanRatePercent.IsZero() || !terms.NisaRatePercent.IsZero() {
		t.Errorf("Expected zero rates to be kept, got loan %s nisa %s", terms.LoanRatePercent, terms.NisaRatePercent)
	}
	if terms.Years != 0 {
		t.Errorf("Expected zero years to be kept, got %d", terms.Years)
	}
}
