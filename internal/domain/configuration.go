package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the top-level input file
type Configuration struct {
	// TaxYear selects a built-in rule set; 0 means the current one.
	TaxYear int `yaml:"tax_year" json:"tax_year"`

	// RulesFile optionally points at a YAML or TOML rule set overriding TaxYear.
	RulesFile string `yaml:"rules_file,omitempty" json:"rules_file,omitempty"`

	Household  Household        `yaml:"household" json:"household"`
	LifePlan   *LifePlan        `yaml:"life_plan,omitempty" json:"life_plan,omitempty"`
	OtherTaxes *OtherTaxInputs  `yaml:"other_taxes,omitempty" json:"other_taxes,omitempty"`
	Scenarios  []WhatIfScenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// Household is the form-level view of the tax inputs. It differs from TaxInputs only in
// taking the iDeCo contribution per month.
type Household struct {
	GrossIncome                decimal.Decimal     `yaml:"gross_income" json:"gross_income"`
	IDeCoMonthly               decimal.Decimal     `yaml:"ideco_monthly" json:"ideco_monthly"`
	FurusatoYearly             decimal.Decimal     `yaml:"furusato_yearly" json:"furusato_yearly"`
	HasSpouse                  bool                `yaml:"has_spouse" json:"has_spouse"`
	GeneralDependents          int                 `yaml:"general_dependents" json:"general_dependents"`
	SpecificDependents         int                 `yaml:"specific_dependents" json:"specific_dependents"`
	LifeInsurancePremium       decimal.Decimal     `yaml:"life_insurance_premium" json:"life_insurance_premium"`
	EarthquakeInsurancePremium decimal.Decimal     `yaml:"earthquake_insurance_premium" json:"earthquake_insurance_premium"`
	MiscIncome                 decimal.Decimal     `yaml:"misc_income" json:"misc_income"`
	MiscExpenses               decimal.Decimal     `yaml:"misc_expenses" json:"misc_expenses"`
	LoanBalanceYearEnd         decimal.Decimal     `yaml:"loan_balance_year_end" json:"loan_balance_year_end"`
	LoanPeriod                 LoanPeriod          `yaml:"loan_period" json:"loan_period"`
	SocialInsuranceMode        SocialInsuranceMode `yaml:"social_insurance_mode" json:"social_insurance_mode"`
	SocialInsuranceManual      decimal.Decimal     `yaml:"social_insurance_manual" json:"social_insurance_manual"`
	MedicalExpenses            decimal.Decimal     `yaml:"medical_expenses" json:"medical_expenses"`
}

// monthsPerYear converts monthly contributions into yearly amounts
var monthsPerYear = decimal.NewFromInt(12)

// ToTaxInputs builds the engine snapshot, filling defaults for unset enumerations.
func (h Household) ToTaxInputs() TaxInputs {
	inputs := TaxInputs{
		GrossIncome:                h.GrossIncome,
		PensionContributionYearly:  h.IDeCoMonthly.Mul(monthsPerYear),
		DonationYearly:             h.FurusatoYearly,
		HasSpouse:                  h.HasSpouse,
		GeneralDependents:          h.GeneralDependents,
		SpecificDependents:         h.SpecificDependents,
		LifeInsurancePremium:       h.LifeInsurancePremium,
		EarthquakeInsurancePremium: h.EarthquakeInsurancePremium,
		MiscIncome:                 h.MiscIncome,
		MiscExpenses:               h.MiscExpenses,
		LoanBalanceYearEnd:         h.LoanBalanceYearEnd,
		LoanPeriod:                 h.LoanPeriod,
		SocialInsuranceMode:        h.SocialInsuranceMode,
		SocialInsuranceManual:      h.SocialInsuranceManual,
		MedicalExpenses:            h.MedicalExpenses,
	}
	if inputs.LoanPeriod == "" {
		inputs.LoanPeriod = DefaultLoanPeriod
	}
	if inputs.SocialInsuranceMode == "" {
		inputs.SocialInsuranceMode = SocialInsuranceAuto
	}
	return inputs
}

// LifePlan configures the forward-looking simulations
type LifePlan struct {
	// ChildAge enables the child growth projection when set.
	ChildAge *int `yaml:"child_age,omitempty" json:"child_age,omitempty"`

	MonthlySurplus decimal.Decimal `yaml:"monthly_surplus" json:"monthly_surplus"`

	// Nil rates and horizon take the defaults below; an explicit zero is kept.
	LoanRatePercent *decimal.Decimal `yaml:"loan_rate_percent,omitempty" json:"loan_rate_percent,omitempty"`
	NisaRatePercent *decimal.Decimal `yaml:"nisa_rate_percent,omitempty" json:"nisa_rate_percent,omitempty"`
	ComparisonYears *int             `yaml:"comparison_years,omitempty" json:"comparison_years,omitempty"`
}

// Default assumptions of the loan vs. investment comparison
var (
	DefaultLoanRatePercent = decimal.RequireFromString("0.7")
	DefaultNisaRatePercent = decimal.NewFromInt(4)
	DefaultComparisonYears = 10
)

// LoanVsNisaTerms are the resolved inputs of the loan vs. investment comparison.
type LoanVsNisaTerms struct {
	MonthlySurplus  decimal.Decimal
	LoanRatePercent decimal.Decimal
	NisaRatePercent decimal.Decimal
	Years           int
}

// WithDefaults resolves the comparison terms, filling unset rates and horizon.
func (lp LifePlan) WithDefaults() LoanVsNisaTerms {
	terms := LoanVsNisaTerms{
		MonthlySurplus:  lp.MonthlySurplus,
		LoanRatePercent: DefaultLoanRatePercent,
		NisaRatePercent: DefaultNisaRatePercent,
		Years:           DefaultComparisonYears,
	}
	if lp.LoanRatePercent != nil {
		terms.LoanRatePercent = *lp.LoanRatePercent
	}
	if lp.NisaRatePercent != nil {
		terms.NisaRatePercent = *lp.NisaRatePercent
	}
	if lp.ComparisonYears != nil {
		terms.Years = *lp.ComparisonYears
	}
	return terms
}

// WhatIfScenario is a named list of transform specs applied to the household,
// e.g. "set_ideco:monthly=23000".
type WhatIfScenario struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Transforms  []string `yaml:"transforms" json:"transforms"`
}
