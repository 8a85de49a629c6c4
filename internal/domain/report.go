package domain

import (
	"github.com/shopspring/decimal"
)

// Report collects every estimate produced for one configuration
type Report struct {
	TaxYear       int             `json:"tax_year" yaml:"tax_year"`
	Assumptions   []string        `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
	Inputs        TaxInputs       `json:"inputs" yaml:"inputs"`
	Taxes         TaxResult       `json:"taxes" yaml:"taxes"`
	FurusatoLimit decimal.Decimal `json:"furusato_limit" yaml:"furusato_limit"`

	ChildAge    *int               `json:"child_age,omitempty" yaml:"child_age,omitempty"`
	ChildGrowth []ChildGrowthPoint `json:"child_growth,omitempty" yaml:"child_growth,omitempty"`

	LoanVsNisa *LoanVsNisaResult `json:"loan_vs_nisa,omitempty" yaml:"loan_vs_nisa,omitempty"`

	// ComparisonYears is the horizon LoanVsNisa was computed over.
	ComparisonYears int `json:"comparison_years,omitempty" yaml:"comparison_years,omitempty"`

	OtherTaxes *OtherTaxResult   `json:"other_taxes,omitempty" yaml:"other_taxes,omitempty"`
	Scenarios  []ScenarioOutcome `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
}

// ScenarioOutcome is one what-if alternative evaluated against the base household.
type ScenarioOutcome struct {
	Name          string          `json:"name" yaml:"name"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	Result        TaxResult       `json:"result" yaml:"result"`
	NetIncomeDiff decimal.Decimal `json:"net_income_diff" yaml:"net_income_diff"`
	TotalTaxDiff  decimal.Decimal `json:"total_tax_diff" yaml:"total_tax_diff"`
	FurusatoLimit decimal.Decimal `json:"furusato_limit" yaml:"furusato_limit"`
}
