package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a rule set from a YAML or TOML file, chosen by extension.
func LoadRules(filename string) (domain.RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RuleSet{}, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}

	var rules domain.RuleSet
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &rules); err != nil {
			return domain.RuleSet{}, fmt.Errorf("failed to parse TOML rules: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return domain.RuleSet{}, fmt.Errorf("failed to parse YAML rules: %w", err)
		}
	default:
		return domain.RuleSet{}, fmt.Errorf("unsupported rules file extension %q (want .yaml, .yml or .toml)", filepath.Ext(filename))
	}

	if err := ValidateRules(rules); err != nil {
		return domain.RuleSet{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ResolveRules picks the rule set for a configuration: an explicit rules file wins
// over the tax year.
func ResolveRules(taxYear int, rulesFile string) (domain.RuleSet, error) {
	if rulesFile != "" {
		return LoadRules(rulesFile)
	}
	return domain.RuleSetForYear(taxYear)
}

// ValidateRules checks a rule set for ascending tiers and non-negative rates.
func ValidateRules(rules domain.RuleSet) error {
	if len(rules.IncomeTax.Brackets) == 0 {
		return invalid("income_tax.brackets", "at least one bracket is required")
	}
	if len(rules.Deductions.Employment) == 0 {
		return invalid("deductions.employment", "at least one tier is required")
	}
	if len(rules.Deductions.BasicIncome) == 0 {
		return invalid("deductions.basic_income", "at least one tier is required")
	}

	if err := ascendingBrackets("income_tax.brackets", rules.IncomeTax.Brackets); err != nil {
		return err
	}
	if err := ascendingBrackets("other_taxes.inheritance_brackets", rules.OtherTaxes.InheritanceBrackets); err != nil {
		return err
	}
	for field, tiers := range map[string][]domain.LinearTier{
		"deductions.employment":              rules.Deductions.Employment,
		"deductions.life_insurance_income":   rules.Deductions.LifeInsuranceIncome,
		"deductions.life_insurance_resident": rules.Deductions.LifeInsuranceRes,
	} {
		if err := ascendingLinear(field, tiers); err != nil {
			return err
		}
	}
	for i := 1; i < len(rules.Deductions.BasicIncome); i++ {
		if !rules.Deductions.BasicIncome[i].Max.GreaterThan(rules.Deductions.BasicIncome[i-1].Max) {
			return invalid(fmt.Sprintf("deductions.basic_income[%d]", i), "tier maximums must ascend")
		}
	}

	for field, rate := range map[string]decimal.Decimal{
		"income_tax.surtax_multiplier":           rules.IncomeTax.SurtaxMultiplier,
		"resident_tax.rate":                      rules.ResidentTax.Rate,
		"social_insurance.auto_rate":             rules.SocialInsurance.AutoRate,
		"housing_loan.credit_rate":               rules.HousingLoan.CreditRate,
		"other_taxes.consumption_effective_rate": rules.OtherTaxes.ConsumptionEffectiveRate,
		"deductions.medical_floor_rate":          rules.Deductions.MedicalFloorRate,
	} {
		if err := nonNegative(field, rate); err != nil {
			return err
		}
	}

	if !rules.Donation.SearchTolerance.IsPositive() {
		return invalid("donation.search_tolerance", "must be positive")
	}
	return nil
}

func ascendingBrackets(field string, brackets []domain.TaxBracket) error {
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return invalid(fmt.Sprintf("%s[%d]", field, i), "rate cannot be negative")
		}
		// the last tier is unbounded
		if i > 0 && i < len(brackets)-1 && !b.Max.GreaterThan(brackets[i-1].Max) {
			return invalid(fmt.Sprintf("%s[%d]", field, i), "bracket maximums must ascend")
		}
	}
	return nil
}

func ascendingLinear(field string, tiers []domain.LinearTier) error {
	for i, t := range tiers {
		if t.Rate.IsNegative() {
			return invalid(fmt.Sprintf("%s[%d]", field, i), "rate cannot be negative")
		}
		if i > 0 && i < len(tiers)-1 && !t.Max.GreaterThan(tiers[i-1].Max) {
			return invalid(fmt.Sprintf("%s[%d]", field, i), "tier maximums must ascend")
		}
	}
	return nil
}
