package transform

import (
	"fmt"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

func requireNonNegative(name, field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return NewTransformError(name, "validate", fmt.Sprintf("%s cannot be negative: %s", field, v), nil)
	}
	return nil
}

// SetGrossIncome replaces the gross salary.
type SetGrossIncome struct {
	Amount decimal.Decimal
}

func (s *SetGrossIncome) Name() string { return "set_salary" }

func (s *SetGrossIncome) Description() string {
	return fmt.Sprintf("Set gross salary to %s yen", s.Amount.StringFixed(0))
}

func (s *SetGrossIncome) Validate(domain.TaxInputs) error {
	return requireNonNegative(s.Name(), "salary", s.Amount)
}

func (s *SetGrossIncome) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.GrossIncome = s.Amount
	return base, nil
}

// AdjustGrossIncome scales the gross salary by a percentage (e.g. 10 for a 10% raise).
type AdjustGrossIncome struct {
	Percent decimal.Decimal
}

func (a *AdjustGrossIncome) Name() string { return "adjust_salary" }

func (a *AdjustGrossIncome) Description() string {
	return fmt.Sprintf("Change gross salary by %s%%", a.Percent.String())
}

func (a *AdjustGrossIncome) Validate(domain.TaxInputs) error {
	if a.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(a.Name(), "validate", "salary cannot drop by more than 100%", nil)
	}
	return nil
}

func (a *AdjustGrossIncome) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	factor := decimal.NewFromInt(100).Add(a.Percent).Div(decimal.NewFromInt(100))
	base.GrossIncome = base.GrossIncome.Mul(factor).Floor()
	return base, nil
}

// SetPensionContribution sets the iDeCo contribution from a monthly amount.
type SetPensionContribution struct {
	Monthly decimal.Decimal
}

func (s *SetPensionContribution) Name() string { return "set_ideco" }

func (s *SetPensionContribution) Description() string {
	return fmt.Sprintf("Contribute %s yen per month to iDeCo", s.Monthly.StringFixed(0))
}

func (s *SetPensionContribution) Validate(domain.TaxInputs) error {
	return requireNonNegative(s.Name(), "monthly contribution", s.Monthly)
}

func (s *SetPensionContribution) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.PensionContributionYearly = s.Monthly.Mul(monthsPerYear)
	return base, nil
}

// SetDonation sets the yearly furusato nozei donation.
type SetDonation struct {
	Amount decimal.Decimal
}

func (s *SetDonation) Name() string { return "set_donation" }

func (s *SetDonation) Description() string {
	return fmt.Sprintf("Donate %s yen through furusato nozei", s.Amount.StringFixed(0))
}

func (s *SetDonation) Validate(domain.TaxInputs) error {
	return requireNonNegative(s.Name(), "donation", s.Amount)
}

func (s *SetDonation) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.DonationYearly = s.Amount
	return base, nil
}

// SetSpouse toggles the spouse deduction.
type SetSpouse struct {
	HasSpouse bool
}

func (s *SetSpouse) Name() string { return "set_spouse" }

func (s *SetSpouse) Description() string {
	if s.HasSpouse {
		return "Claim the spouse deduction"
	}
	return "Drop the spouse deduction"
}

func (s *SetSpouse) Validate(domain.TaxInputs) error { return nil }

func (s *SetSpouse) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.HasSpouse = s.HasSpouse
	return base, nil
}

// SetDependents replaces both dependent counts.
type SetDependents struct {
	General  int
	Specific int
}

func (s *SetDependents) Name() string { return "set_dependents" }

func (s *SetDependents) Description() string {
	return fmt.Sprintf("Claim %d general and %d specific dependents", s.General, s.Specific)
}

func (s *SetDependents) Validate(domain.TaxInputs) error {
	if s.General < 0 || s.Specific < 0 {
		return NewTransformError(s.Name(), "validate", "dependent counts cannot be negative", nil)
	}
	return nil
}

func (s *SetDependents) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.GeneralDependents = s.General
	base.SpecificDependents = s.Specific
	return base, nil
}

// AdjustDependents moves dependent counts by a delta. Each resulting count is floored at 0,
// so a removal from an empty band is a no-op.
type AdjustDependents struct {
	General  int
	Specific int
}

func (a *AdjustDependents) Name() string { return "adjust_dependents" }

func (a *AdjustDependents) Description() string {
	return fmt.Sprintf("Change dependents by %+d general and %+d specific", a.General, a.Specific)
}

func (a *AdjustDependents) Validate(domain.TaxInputs) error { return nil }

func (a *AdjustDependents) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.GeneralDependents = max(0, base.GeneralDependents+a.General)
	base.SpecificDependents = max(0, base.SpecificDependents+a.Specific)
	return base, nil
}

// MoveDependentBand builds the transform that adds delta dependents to one band.
// BandNone yields a no-op.
func MoveDependentBand(band domain.DependentBand, delta int) *AdjustDependents {
	switch band {
	case domain.BandGeneral:
		return &AdjustDependents{General: delta}
	case domain.BandSpecific:
		return &AdjustDependents{Specific: delta}
	default:
		return &AdjustDependents{}
	}
}

// SetLoanBalance sets the year-end housing loan balance and, optionally, the move-in period.
type SetLoanBalance struct {
	Balance decimal.Decimal
	Period  domain.LoanPeriod // empty keeps the current period
}

func (s *SetLoanBalance) Name() string { return "set_loan" }

func (s *SetLoanBalance) Description() string {
	if s.Period == "" {
		return fmt.Sprintf("Set year-end loan balance to %s yen", s.Balance.StringFixed(0))
	}
	return fmt.Sprintf("Set year-end loan balance to %s yen (moved in %s)", s.Balance.StringFixed(0), s.Period)
}

func (s *SetLoanBalance) Validate(domain.TaxInputs) error {
	if err := requireNonNegative(s.Name(), "loan balance", s.Balance); err != nil {
		return err
	}
	if s.Period != "" {
		if _, err := domain.ParseLoanPeriod(string(s.Period)); err != nil {
			return NewTransformError(s.Name(), "validate", "invalid move-in period", err)
		}
	}
	return nil
}

func (s *SetLoanBalance) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.LoanBalanceYearEnd = s.Balance
	if s.Period != "" {
		base.LoanPeriod = s.Period
	}
	return base, nil
}

// SetMedicalExpenses sets the yearly medical expenses.
type SetMedicalExpenses struct {
	Amount decimal.Decimal
}

func (s *SetMedicalExpenses) Name() string { return "set_medical" }

func (s *SetMedicalExpenses) Description() string {
	return fmt.Sprintf("Set medical expenses to %s yen", s.Amount.StringFixed(0))
}

func (s *SetMedicalExpenses) Validate(domain.TaxInputs) error {
	return requireNonNegative(s.Name(), "medical expenses", s.Amount)
}

func (s *SetMedicalExpenses) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.MedicalExpenses = s.Amount
	return base, nil
}

// SetInsurancePremiums sets the life and earthquake insurance premiums.
type SetInsurancePremiums struct {
	Life       decimal.Decimal
	Earthquake decimal.Decimal
}

func (s *SetInsurancePremiums) Name() string { return "set_insurance" }

func (s *SetInsurancePremiums) Description() string {
	return fmt.Sprintf("Pay %s yen life and %s yen earthquake insurance premiums",
		s.Life.StringFixed(0), s.Earthquake.StringFixed(0))
}

func (s *SetInsurancePremiums) Validate(domain.TaxInputs) error {
	if err := requireNonNegative(s.Name(), "life premium", s.Life); err != nil {
		return err
	}
	return requireNonNegative(s.Name(), "earthquake premium", s.Earthquake)
}

func (s *SetInsurancePremiums) Apply(base domain.TaxInputs) (domain.TaxInputs, error) {
	base.LifeInsurancePremium = s.Life
	base.EarthquakeInsurancePremium = s.Earthquake
	return base, nil
}
