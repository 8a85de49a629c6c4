package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LoanPeriod identifies the move-in period of a housing loan, which decides the
// resident tax cap for the unused part of the housing loan credit.
type LoanPeriod string

const (
	LoanPeriodPre2022  LoanPeriod = "2014-2021"
	LoanPeriodFrom2022 LoanPeriod = "2022-"
	DefaultLoanPeriod             = LoanPeriodFrom2022
)

// ParseLoanPeriod converts a string into a LoanPeriod. Empty selects the default.
func ParseLoanPeriod(s string) (LoanPeriod, error) {
	switch LoanPeriod(strings.TrimSpace(s)) {
	case "":
		return DefaultLoanPeriod, nil
	case LoanPeriodPre2022:
		return LoanPeriodPre2022, nil
	case LoanPeriodFrom2022:
		return LoanPeriodFrom2022, nil
	default:
		return "", fmt.Errorf("loan period must be %q or %q, got %q", LoanPeriodPre2022, LoanPeriodFrom2022, s)
	}
}

// SocialInsuranceMode selects how the social insurance premium is derived.
type SocialInsuranceMode string

const (
	SocialInsuranceAuto   SocialInsuranceMode = "auto"
	SocialInsuranceManual SocialInsuranceMode = "manual"
)

// ParseSocialInsuranceMode converts a string into a SocialInsuranceMode. Empty selects auto.
func ParseSocialInsuranceMode(s string) (SocialInsuranceMode, error) {
	switch SocialInsuranceMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SocialInsuranceAuto:
		return SocialInsuranceAuto, nil
	case SocialInsuranceManual:
		return SocialInsuranceManual, nil
	default:
		return "", fmt.Errorf("social insurance mode must be %q or %q, got %q", SocialInsuranceAuto, SocialInsuranceManual, s)
	}
}

// CarCategory is the engine displacement class used for the annual automobile tax.
type CarCategory string

const (
	CarNone   CarCategory = "none"
	CarKei    CarCategory = "kei"
	Car1000   CarCategory = "1.0"
	Car1500   CarCategory = "1.5"
	Car2000   CarCategory = "2.0"
	Car2500   CarCategory = "2.5"
	Car3000   CarCategory = "3.0"
	Car3500   CarCategory = "3.5"
	Car4000   CarCategory = "4.0"
	Car4500   CarCategory = "4.5"
	Car6000   CarCategory = "6.0"
	CarOver6k CarCategory = "over6.0"
)

// CarCategories lists every known category in display order.
var CarCategories = []CarCategory{
	CarNone, CarKei, Car1000, Car1500, Car2000, Car2500,
	Car3000, Car3500, Car4000, Car4500, Car6000, CarOver6k,
}

// ErrUnknownCarCategory is returned when a category key is not recognized.
var ErrUnknownCarCategory = errors.New("unknown car category")

// ParseCarCategory resolves a category key. Empty means no car.
func ParseCarCategory(s string) (CarCategory, error) {
	key := CarCategory(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return CarNone, nil
	}
	for _, c := range CarCategories {
		if c == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCarCategory, s)
}

// TaxInputs is the immutable snapshot the tax engine computes from. All amounts are
// yearly yen unless the field name says otherwise.
type TaxInputs struct {
	GrossIncome decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	// PensionContributionYearly is the iDeCo contribution converted to a yearly amount.
	PensionContributionYearly decimal.Decimal `yaml:"pension_contribution_yearly" json:"pension_contribution_yearly"`
	// DonationYearly is the furusato nozei donation total for the year.
	DonationYearly decimal.Decimal `yaml:"donation_yearly" json:"donation_yearly"`
	HasSpouse      bool            `yaml:"has_spouse" json:"has_spouse"`
	// GeneralDependents counts dependents aged 16-18 or 23-69.
	GeneralDependents int `yaml:"general_dependents" json:"general_dependents"`
	// SpecificDependents counts dependents aged 19-22.
	SpecificDependents int `yaml:"specific_dependents" json:"specific_dependents"`

	LifeInsurancePremium       decimal.Decimal `yaml:"life_insurance_premium" json:"life_insurance_premium"`
	EarthquakeInsurancePremium decimal.Decimal `yaml:"earthquake_insurance_premium" json:"earthquake_insurance_premium"`
	MiscIncome                 decimal.Decimal `yaml:"misc_income" json:"misc_income"`
	MiscExpenses               decimal.Decimal `yaml:"misc_expenses" json:"misc_expenses"`
	LoanBalanceYearEnd         decimal.Decimal `yaml:"loan_balance_year_end" json:"loan_balance_year_end"`
	LoanPeriod                 LoanPeriod      `yaml:"loan_period" json:"loan_period"`

	SocialInsuranceMode   SocialInsuranceMode `yaml:"social_insurance_mode" json:"social_insurance_mode"`
	SocialInsuranceManual decimal.Decimal     `yaml:"social_insurance_manual" json:"social_insurance_manual"`
	MedicalExpenses       decimal.Decimal     `yaml:"medical_expenses" json:"medical_expenses"`
}

// NewTaxInputs returns inputs for a salaried earner with every other field at its default.
func NewTaxInputs(grossIncome decimal.Decimal) TaxInputs {
	return TaxInputs{
		GrossIncome:         grossIncome,
		LoanPeriod:          DefaultLoanPeriod,
		SocialInsuranceMode: SocialInsuranceAuto,
	}
}

// TotalDependents returns the number of dependents eligible for a deduction.
func (t TaxInputs) TotalDependents() int {
	return t.GeneralDependents + t.SpecificDependents
}
