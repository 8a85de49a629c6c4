package compare

import (
	"fmt"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/pkg/yen"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single household variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string           `json:"scenarioName"`
	Description  string           `json:"description"`
	Result       domain.TaxResult `json:"result"`

	// Key Metrics
	NetIncome     decimal.Decimal `json:"netIncome"`
	IncomeTax     decimal.Decimal `json:"incomeTax"`
	ResidentTax   decimal.Decimal `json:"residentTax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	FurusatoLimit decimal.Decimal `json:"furusatoLimit"`
	Donation      decimal.Decimal `json:"donation"`

	// Comparison to Base
	NetIncomeDiffFromBase   decimal.Decimal `json:"netIncomeDiffFromBase"`
	NetIncomePctFromBase    decimal.Decimal `json:"netIncomePctFromBase"`
	IncomeTaxDiffFromBase   decimal.Decimal `json:"incomeTaxDiffFromBase"`
	ResidentTaxDiffFromBase decimal.Decimal `json:"residentTaxDiffFromBase"`
	TotalTaxDiffFromBase    decimal.Decimal `json:"totalTaxDiffFromBase"`
	FurusatoLimitDiff       decimal.Decimal `json:"furusatoLimitDiff"`
}

// ComparisonSet represents a collection of what-if comparisons against one household
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToScenarioOutcomes converts the alternatives for inclusion in a domain.Report
func (cs *ComparisonSet) ToScenarioOutcomes() []domain.ScenarioOutcome {
	return lo.Map(cs.AlternativeResults, func(r ComparisonResult, _ int) domain.ScenarioOutcome {
		return domain.ScenarioOutcome{
			Name:          r.ScenarioName,
			Description:   r.Description,
			Result:        r.Result,
			NetIncomeDiff: r.NetIncomeDiffFromBase,
			TotalTaxDiff:  r.TotalTaxDiffFromBase,
			FurusatoLimit: r.FurusatoLimit,
		}
	})
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one evaluated variant
func (mc *MetricsCalculator) CalculateMetrics(name string, inputs domain.TaxInputs, result domain.TaxResult, furusatoLimit decimal.Decimal) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		Donation:      inputs.DonationYearly,
		Result:        result,
		NetIncome:     result.NetIncome,
		IncomeTax:     result.IncomeTax,
		ResidentTax:   result.ResidentTax,
		TotalTax:      result.TotalTax(),
		FurusatoLimit: furusatoLimit,
	}
}

// CalculateComparison computes comparison metrics between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetIncomeDiffFromBase = scenario.NetIncome.Sub(base.NetIncome)

	if !base.NetIncome.IsZero() {
		scenario.NetIncomePctFromBase = scenario.NetIncomeDiffFromBase.
			Div(base.NetIncome).
			Mul(decimal.NewFromInt(100))
	}

	scenario.IncomeTaxDiffFromBase = scenario.IncomeTax.Sub(base.IncomeTax)
	scenario.ResidentTaxDiffFromBase = scenario.ResidentTax.Sub(base.ResidentTax)
	scenario.TotalTaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)
	scenario.FurusatoLimitDiff = scenario.FurusatoLimit.Sub(base.FurusatoLimit)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best take-home pay
	bestIncome := lo.MaxBy(compSet.AlternativeResults, func(a, b ComparisonResult) bool {
		return a.NetIncome.GreaterThan(b.NetIncome)
	})
	if bestIncome.NetIncome.GreaterThan(base.NetIncome) {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Take-Home: %s provides %s more per year than the base household",
				bestIncome.ScenarioName, yen.Format(bestIncome.NetIncome.Sub(base.NetIncome))))
	}

	// Find lowest tax burden
	lowestTax := lo.MinBy(compSet.AlternativeResults, func(a, b ComparisonResult) bool {
		return a.TotalTax.LessThan(b.TotalTax)
	})
	if lowestTax.TotalTax.LessThan(base.TotalTax) {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Taxes: %s saves %s in income and resident tax",
				lowestTax.ScenarioName, yen.Format(base.TotalTax.Sub(lowestTax.TotalTax))))
	}

	// Donations above the limit no longer pay for themselves
	for _, r := range append([]ComparisonResult{*base}, compSet.AlternativeResults...) {
		if r.Donation.GreaterThan(r.FurusatoLimit) {
			recommendations = append(recommendations,
				fmt.Sprintf("Over Limit: %s donates %s, above its furusato limit of %s",
					r.ScenarioName, yen.Format(r.Donation), yen.Format(r.FurusatoLimit)))
		}
	}

	return recommendations
}
