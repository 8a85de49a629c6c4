package domain

import (
	"github.com/shopspring/decimal"
)

// TaxResult is the outcome of one tax calculation. Taxes and taxable bases are whole yen.
type TaxResult struct {
	// GrossIncome is salary plus miscellaneous income.
	GrossIncome         decimal.Decimal `json:"gross_income" yaml:"gross_income"`
	EmploymentDeduction decimal.Decimal `json:"employment_deduction" yaml:"employment_deduction"`
	SocialInsurance     decimal.Decimal `json:"social_insurance" yaml:"social_insurance"`
	// TaxableIncome is the income tax base, floored to 1,000 yen.
	TaxableIncome         decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	TaxableResidentIncome decimal.Decimal `json:"taxable_resident_income" yaml:"taxable_resident_income"`
	IncomeTax             decimal.Decimal `json:"income_tax" yaml:"income_tax"`
	ResidentTax           decimal.Decimal `json:"resident_tax" yaml:"resident_tax"`
	NetIncome             decimal.Decimal `json:"net_income" yaml:"net_income"`

	BasicDeductionIncome   decimal.Decimal `json:"basic_deduction_income" yaml:"basic_deduction_income"`
	BasicDeductionResident decimal.Decimal `json:"basic_deduction_resident" yaml:"basic_deduction_resident"`
	TotalIncomeDeductions  decimal.Decimal `json:"total_income_deductions" yaml:"total_income_deductions"`
	MedicalDeduction       decimal.Decimal `json:"medical_deduction" yaml:"medical_deduction"`
	AdjustmentDeduction    decimal.Decimal `json:"adjustment_deduction" yaml:"adjustment_deduction"`

	// Credit bookkeeping, useful for explaining where the loan credit went.
	HousingLoanCredit         decimal.Decimal `json:"housing_loan_credit" yaml:"housing_loan_credit"`
	HousingLoanCreditResident decimal.Decimal `json:"housing_loan_credit_resident" yaml:"housing_loan_credit_resident"`
	DonationCreditResident    decimal.Decimal `json:"donation_credit_resident" yaml:"donation_credit_resident"`
}

// TotalTax returns income tax plus resident tax.
func (r TaxResult) TotalTax() decimal.Decimal {
	return r.IncomeTax.Add(r.ResidentTax)
}

// DependentBand is the deduction band a child falls into at a given age.
type DependentBand int

const (
	BandNone DependentBand = iota
	BandGeneral
	BandSpecific
)

// String returns a short label for the band
func (b DependentBand) String() string {
	switch b {
	case BandGeneral:
		return "general"
	case BandSpecific:
		return "specific"
	default:
		return "none"
	}
}

// BandForAge returns the deduction band for a dependent of the given age:
// general for 16-18, specific for 19-22, none otherwise.
func BandForAge(age int) DependentBand {
	switch {
	case age >= 16 && age <= 18:
		return BandGeneral
	case age >= 19 && age <= 22:
		return BandSpecific
	default:
		return BandNone
	}
}

// ChildGrowthPoint is one future year of the child growth projection.
type ChildGrowthPoint struct {
	Age        int `json:"age" yaml:"age"`
	YearOffset int `json:"year_offset" yaml:"year_offset"`
	// TaxReduction is present-year total tax minus that year's total tax.
	TaxReduction decimal.Decimal `json:"tax_reduction" yaml:"tax_reduction"`
	TotalTax     decimal.Decimal `json:"total_tax" yaml:"total_tax"`
	IsHighSchool bool            `json:"is_high_school" yaml:"is_high_school"`
	IsCollege    bool            `json:"is_college" yaml:"is_college"`
}

// Recommendation is the outcome of the loan prepayment vs. investment comparison.
type Recommendation string

const (
	RecommendNISA Recommendation = "NISA"
	RecommendLoan Recommendation = "LOAN"
	RecommendEven Recommendation = "EVEN"
)

// LoanVsNisaResult compares prepaying a housing loan with investing the same cash flow.
type LoanVsNisaResult struct {
	LoanSavings    decimal.Decimal `json:"loan_savings" yaml:"loan_savings"`
	NisaGains      decimal.Decimal `json:"nisa_gains" yaml:"nisa_gains"`
	Difference     decimal.Decimal `json:"difference" yaml:"difference"`
	Recommendation Recommendation  `json:"recommendation" yaml:"recommendation"`
	// TotalPrincipal is the cash contributed over the horizon in either scenario.
	TotalPrincipal decimal.Decimal `json:"total_principal" yaml:"total_principal"`
}

// OtherTaxInputs are the independent bases of the auxiliary household tax estimates.
type OtherTaxInputs struct {
	MonthlyConsumptionSpending decimal.Decimal `json:"monthly_consumption_spending" yaml:"monthly_consumption_spending"`
	DailyTobaccoSticks         int             `json:"daily_tobacco_sticks" yaml:"daily_tobacco_sticks"`
	MonthlyGasolineCost        decimal.Decimal `json:"monthly_gasoline_cost" yaml:"monthly_gasoline_cost"`
	YearlyPropertyTax          decimal.Decimal `json:"yearly_property_tax" yaml:"yearly_property_tax"`
	CarCategory                CarCategory     `json:"car_category" yaml:"car_category"`
	InheritanceAssets          decimal.Decimal `json:"inheritance_assets" yaml:"inheritance_assets"`
	InheritanceHeirs           int             `json:"inheritance_heirs" yaml:"inheritance_heirs"`
}

// OtherTaxResult holds the yearly estimates for each auxiliary tax.
type OtherTaxResult struct {
	ConsumptionTax       decimal.Decimal `json:"consumption_tax" yaml:"consumption_tax"`
	TobaccoTax           decimal.Decimal `json:"tobacco_tax" yaml:"tobacco_tax"`
	GasolineTax          decimal.Decimal `json:"gasoline_tax" yaml:"gasoline_tax"`
	PropertyTax          decimal.Decimal `json:"property_tax" yaml:"property_tax"`
	CarTax               decimal.Decimal `json:"car_tax" yaml:"car_tax"`
	InheritanceTaxYearly decimal.Decimal `json:"inheritance_tax_yearly" yaml:"inheritance_tax_yearly"`
	TotalOtherTax        decimal.Decimal `json:"total_other_tax" yaml:"total_other_tax"`
}
