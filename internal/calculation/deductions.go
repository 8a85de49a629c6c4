package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionBreakdown holds every deduction component resolved for one set of inputs.
type DeductionBreakdown struct {
	EmploymentDeduction decimal.Decimal
	// TotalIncome is employment income plus net miscellaneous income.
	TotalIncome     decimal.Decimal
	SocialInsurance decimal.Decimal
	Pension         decimal.Decimal

	BasicIncome   decimal.Decimal
	BasicResident decimal.Decimal

	LifeInsurance domain.DeductionPair
	Earthquake    domain.DeductionPair
	Dependents    domain.DeductionPair
	Medical       decimal.Decimal

	// Donation is the income-side furusato deduction (donation above the self burden).
	Donation decimal.Decimal
}

// IncomeTotal sums the income tax deductions, excluding the donation deduction.
func (b DeductionBreakdown) IncomeTotal() decimal.Decimal {
	return b.SocialInsurance.
		Add(b.BasicIncome).
		Add(b.Pension).
		Add(b.LifeInsurance.Income).
		Add(b.Earthquake.Income).
		Add(b.Dependents.Income).
		Add(b.Medical)
}

// ResidentTotal sums the resident tax deductions.
func (b DeductionBreakdown) ResidentTotal() decimal.Decimal {
	return b.SocialInsurance.
		Add(b.BasicResident).
		Add(b.Pension).
		Add(b.LifeInsurance.Resident).
		Add(b.Earthquake.Resident).
		Add(b.Dependents.Resident).
		Add(b.Medical)
}

// DeductionResolver computes the deduction components from a rule set
type DeductionResolver struct {
	rules           domain.DeductionRules
	socialInsurance domain.SocialInsuranceRule
	donation        domain.DonationRules
}

// NewDeductionResolver creates a resolver for the given rule set
func NewDeductionResolver(rules domain.RuleSet) *DeductionResolver {
	return &DeductionResolver{
		rules:           rules.Deductions,
		socialInsurance: rules.SocialInsurance,
		donation:        rules.Donation,
	}
}

// EmploymentDeduction returns the salary income deduction for gross salary
func (dr *DeductionResolver) EmploymentDeduction(gross decimal.Decimal) decimal.Decimal {
	return evaluateLinear(gross, dr.rules.Employment)
}

// SocialInsurance returns the manual amount in manual mode, otherwise floor(gross*rate).
func (dr *DeductionResolver) SocialInsurance(inputs domain.TaxInputs) decimal.Decimal {
	if inputs.SocialInsuranceMode == domain.SocialInsuranceManual {
		return inputs.SocialInsuranceManual
	}
	return inputs.GrossIncome.Mul(dr.socialInsurance.AutoRate).Floor()
}

// LifeInsurance returns the income and resident side deductions for a single premium category.
func (dr *DeductionResolver) LifeInsurance(premium decimal.Decimal) domain.DeductionPair {
	if !premium.IsPositive() {
		return domain.DeductionPair{}
	}
	return domain.DeductionPair{
		Income:   evaluateLinear(premium, dr.rules.LifeInsuranceIncome),
		Resident: evaluateLinear(premium, dr.rules.LifeInsuranceRes),
	}
}

// EarthquakeInsurance returns min(cap, premium) for income tax and min(cap, premium*rate)
// for resident tax.
func (dr *DeductionResolver) EarthquakeInsurance(premium decimal.Decimal) domain.DeductionPair {
	if !premium.IsPositive() {
		return domain.DeductionPair{}
	}
	return domain.DeductionPair{
		Income:   decimal.Min(dr.rules.EarthquakeIncomeCap, premium),
		Resident: decimal.Min(dr.rules.EarthquakeResidentCap, premium.Mul(dr.rules.EarthquakeResidentRate)),
	}
}

// Medical returns expenses above min(cap, floor(totalIncome*rate)).
func (dr *DeductionResolver) Medical(expenses, totalIncome decimal.Decimal) decimal.Decimal {
	if !expenses.IsPositive() {
		return decimal.Zero
	}
	threshold := decimal.Min(dr.rules.MedicalFloorCap, totalIncome.Mul(dr.rules.MedicalFloorRate).Floor())
	return nonNegative(expenses.Sub(threshold))
}

// BasicIncome returns the income tax basic deduction for a total income
func (dr *DeductionResolver) BasicIncome(totalIncome decimal.Decimal) decimal.Decimal {
	return evaluateStep(totalIncome, dr.rules.BasicIncome)
}

// Dependents returns the spouse and dependent deductions, additive per head.
func (dr *DeductionResolver) Dependents(inputs domain.TaxInputs) domain.DeductionPair {
	var pair domain.DeductionPair
	if inputs.HasSpouse {
		pair = addPair(pair, dr.rules.Spouse, 1)
	}
	pair = addPair(pair, dr.rules.GeneralDependent, inputs.GeneralDependents)
	pair = addPair(pair, dr.rules.SpecificDependent, inputs.SpecificDependents)
	return pair
}

// DonationDeduction returns the part of a donation above the self burden.
func (dr *DeductionResolver) DonationDeduction(donation decimal.Decimal) decimal.Decimal {
	if donation.LessThanOrEqual(dr.donation.SelfBurden) {
		return decimal.Zero
	}
	return donation.Sub(dr.donation.SelfBurden)
}

// Resolve computes every deduction component for the inputs
func (dr *DeductionResolver) Resolve(inputs domain.TaxInputs) DeductionBreakdown {
	employmentDeduction := dr.EmploymentDeduction(inputs.GrossIncome)
	employmentIncome := nonNegative(inputs.GrossIncome.Sub(employmentDeduction))
	miscNet := nonNegative(inputs.MiscIncome.Sub(inputs.MiscExpenses))
	totalIncome := employmentIncome.Add(miscNet)

	return DeductionBreakdown{
		EmploymentDeduction: employmentDeduction,
		TotalIncome:         totalIncome,
		SocialInsurance:     dr.SocialInsurance(inputs),
		Pension:             inputs.PensionContributionYearly,
		BasicIncome:         dr.BasicIncome(totalIncome),
		BasicResident:       dr.rules.BasicResident,
		LifeInsurance:       dr.LifeInsurance(inputs.LifeInsurancePremium),
		Earthquake:          dr.EarthquakeInsurance(inputs.EarthquakeInsurancePremium),
		Dependents:          dr.Dependents(inputs),
		Medical:             dr.Medical(inputs.MedicalExpenses, totalIncome),
		Donation:            dr.DonationDeduction(inputs.DonationYearly),
	}
}

func addPair(acc, unit domain.DeductionPair, count int) domain.DeductionPair {
	n := decimal.NewFromInt(int64(count))
	return domain.DeductionPair{
		Income:   acc.Income.Add(unit.Income.Mul(n)),
		Resident: acc.Resident.Add(unit.Resident.Mul(n)),
	}
}
