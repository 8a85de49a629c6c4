package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/transform"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxChildAge is the oldest child age the growth projection accepts.
const MaxChildAge = 22

// ValidationError reports one invalid field of a configuration
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	transforms *transform.TransformRegistry
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{transforms: transform.NewTransformRegistry()}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration and normalizes its
// enumerations in place.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.RulesFile == "" {
		if _, err := domain.RuleSetForYear(config.TaxYear); err != nil {
			return invalid("tax_year", "%v", err)
		}
	}
	if err := ip.validateHousehold(&config.Household); err != nil {
		return err
	}
	if config.LifePlan != nil {
		if err := ip.validateLifePlan(config.LifePlan); err != nil {
			return err
		}
	}
	if config.OtherTaxes != nil {
		if err := ip.validateOtherTaxes(config.OtherTaxes); err != nil {
			return err
		}
	}
	return ip.validateScenarios(config.Scenarios)
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid(field, "cannot be negative, got %s", v)
	}
	return nil
}

func (ip *InputParser) validateHousehold(h *domain.Household) error {
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"household.gross_income", h.GrossIncome},
		{"household.ideco_monthly", h.IDeCoMonthly},
		{"household.furusato_yearly", h.FurusatoYearly},
		{"household.life_insurance_premium", h.LifeInsurancePremium},
		{"household.earthquake_insurance_premium", h.EarthquakeInsurancePremium},
		{"household.misc_income", h.MiscIncome},
		{"household.misc_expenses", h.MiscExpenses},
		{"household.loan_balance_year_end", h.LoanBalanceYearEnd},
		{"household.social_insurance_manual", h.SocialInsuranceManual},
		{"household.medical_expenses", h.MedicalExpenses},
	}
	for _, a := range amounts {
		if err := nonNegative(a.field, a.value); err != nil {
			return err
		}
	}

	if h.GeneralDependents < 0 {
		return invalid("household.general_dependents", "cannot be negative, got %d", h.GeneralDependents)
	}
	if h.SpecificDependents < 0 {
		return invalid("household.specific_dependents", "cannot be negative, got %d", h.SpecificDependents)
	}

	period, err := domain.ParseLoanPeriod(string(h.LoanPeriod))
	if err != nil {
		return invalid("household.loan_period", "%v", err)
	}
	h.LoanPeriod = period

	mode, err := domain.ParseSocialInsuranceMode(string(h.SocialInsuranceMode))
	if err != nil {
		return invalid("household.social_insurance_mode", "%v", err)
	}
	h.SocialInsuranceMode = mode

	return nil
}

func (ip *InputParser) validateLifePlan(lp *domain.LifePlan) error {
	if lp.ChildAge != nil && (*lp.ChildAge < 0 || *lp.ChildAge > MaxChildAge) {
		return invalid("life_plan.child_age", "must be between 0 and %d, got %d", MaxChildAge, *lp.ChildAge)
	}
	if err := nonNegative("life_plan.monthly_surplus", lp.MonthlySurplus); err != nil {
		return err
	}
	if lp.LoanRatePercent != nil {
		if err := nonNegative("life_plan.loan_rate_percent", *lp.LoanRatePercent); err != nil {
			return err
		}
	}
	if lp.NisaRatePercent != nil {
		if err := nonNegative("life_plan.nisa_rate_percent", *lp.NisaRatePercent); err != nil {
			return err
		}
	}
	if lp.ComparisonYears != nil && *lp.ComparisonYears < 0 {
		return invalid("life_plan.comparison_years", "cannot be negative, got %d", *lp.ComparisonYears)
	}
	return nil
}

func (ip *InputParser) validateOtherTaxes(o *domain.OtherTaxInputs) error {
	for _, a := range []struct {
		field string
		value decimal.Decimal
	}{
		{"other_taxes.monthly_consumption_spending", o.MonthlyConsumptionSpending},
		{"other_taxes.monthly_gasoline_cost", o.MonthlyGasolineCost},
		{"other_taxes.yearly_property_tax", o.YearlyPropertyTax},
		{"other_taxes.inheritance_assets", o.InheritanceAssets},
	} {
		if err := nonNegative(a.field, a.value); err != nil {
			return err
		}
	}
	if o.DailyTobaccoSticks < 0 {
		return invalid("other_taxes.daily_tobacco_sticks", "cannot be negative, got %d", o.DailyTobaccoSticks)
	}
	if o.InheritanceHeirs < 0 {
		return invalid("other_taxes.inheritance_heirs", "cannot be negative, got %d", o.InheritanceHeirs)
	}

	category, err := domain.ParseCarCategory(string(o.CarCategory))
	if err != nil {
		return invalid("other_taxes.car_category", "%v", err)
	}
	o.CarCategory = category
	return nil
}

func (ip *InputParser) validateScenarios(scenarios []domain.WhatIfScenario) error {
	seen := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		field := fmt.Sprintf("scenarios[%d]", i)
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return invalid(field, "scenario name is required")
		}
		if seen[name] {
			return invalid(field, "duplicate scenario name %q", name)
		}
		seen[name] = true

		if len(s.Transforms) == 0 {
			return invalid(field, "scenario %s has no transforms", name)
		}
		if _, err := ip.transforms.ParseTransformSpecs(s.Transforms); err != nil {
			return invalid(field, "scenario %s: %v", name, err)
		}
	}
	return nil
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
