package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX ASSEMBLY ORDER:
//
// 1. Total income: employment income plus net miscellaneous income, each clamped at 0
// 2. Income tax deductions, plus the donation deduction above the 2,000 yen self burden
// 3. Taxable income floored to 1,000 yen; bracket lookup times the 2.1% surtax, floored
// 4. Housing loan credit applied to income tax first
// 5. Resident tax base from the resident side deductions, floored to 1,000 yen
// 6. Flat resident tax plus per-capita levy, minus the adjustment deduction
// 7. Unused loan credit applied to resident tax, capped by move-in period
// 8. Donation credit applied to resident tax
//
// The order changes the outcome and must not be rearranged. Every subtraction is
// clamped at 0.

// TaxAssembler combines deductions and credits into the final income and resident tax.
type TaxAssembler struct {
	Rules      domain.RuleSet
	Deductions *DeductionResolver
	Logger     Logger
}

// NewTaxAssembler creates an assembler for a rule set
func NewTaxAssembler(rules domain.RuleSet) *TaxAssembler {
	return &TaxAssembler{
		Rules:      rules,
		Deductions: NewDeductionResolver(rules),
		Logger:     NopLogger{},
	}
}

// IncomeTax returns the national income tax on a taxable income, surtax included.
func (ta *TaxAssembler) IncomeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	base := EvaluateBrackets(taxableIncome, ta.Rules.IncomeTax.Brackets)
	return nonNegative(base.Mul(ta.Rules.IncomeTax.SurtaxMultiplier).Floor())
}

// ResidentTax returns floor(taxable*rate) + per-capita levy before any deduction or credit.
func (ta *TaxAssembler) ResidentTax(taxableResidentIncome decimal.Decimal) decimal.Decimal {
	if !taxableResidentIncome.IsPositive() {
		return decimal.Zero
	}
	rt := ta.Rules.ResidentTax
	return taxableResidentIncome.Mul(rt.Rate).Floor().Add(rt.PerCapitaLevy)
}

// HousingLoanCredit returns floor(min(balance, cap) * rate).
func (ta *TaxAssembler) HousingLoanCredit(balance decimal.Decimal) decimal.Decimal {
	hl := ta.Rules.HousingLoan
	return nonNegative(decimal.Min(balance, hl.BalanceCap).Mul(hl.CreditRate).Floor())
}

// ResidentLoanCap returns the maximum loan credit that may be carried to resident tax.
// The cap is derived from the income tax taxable income.
func (ta *TaxAssembler) ResidentLoanCap(period domain.LoanPeriod, taxableIncome decimal.Decimal) decimal.Decimal {
	caps := ta.Rules.HousingLoan.ResidentCaps
	c, ok := caps[period]
	if !ok {
		c = caps[domain.DefaultLoanPeriod]
	}
	return decimal.Min(c.Amount, taxableIncome.Mul(c.Rate).Floor())
}

// Calculate runs the full assembly for one input snapshot. It never fails.
func (ta *TaxAssembler) Calculate(inputs domain.TaxInputs) domain.TaxResult {
	d := ta.Deductions.Resolve(inputs)
	incomeRounding := ta.Rules.IncomeTax.TaxableRounding
	residentRounding := ta.Rules.ResidentTax.TaxableRounding

	incomeDeductions := d.IncomeTotal().Add(d.Donation)
	taxableIncome := floorTo(nonNegative(d.TotalIncome.Sub(incomeDeductions)), incomeRounding)
	incomeTaxBeforeCredit := ta.IncomeTax(taxableIncome)

	loanCredit := ta.HousingLoanCredit(inputs.LoanBalanceYearEnd)
	incomeTax := nonNegative(incomeTaxBeforeCredit.Sub(loanCredit))
	loanCreditRemaining := loanCredit.Sub(incomeTaxBeforeCredit.Sub(incomeTax))

	taxableResident := floorTo(nonNegative(d.TotalIncome.Sub(d.ResidentTotal())), residentRounding)
	adjustment := ta.Rules.ResidentTax.AdjustmentDeduction
	residentTax := nonNegative(ta.ResidentTax(taxableResident).Sub(adjustment))

	residentLoanCredit := decimal.Zero
	if loanCreditRemaining.IsPositive() {
		residentLoanCredit = decimal.Min(loanCreditRemaining, ta.ResidentLoanCap(inputs.LoanPeriod, taxableIncome))
		before := residentTax
		residentTax = nonNegative(residentTax.Sub(residentLoanCredit))
		residentLoanCredit = before.Sub(residentTax)
	}

	donationCredit := decimal.Zero
	if inputs.DonationYearly.GreaterThan(ta.Rules.Donation.SelfBurden) {
		before := residentTax
		residentTax = nonNegative(residentTax.Sub(inputs.DonationYearly.Sub(ta.Rules.Donation.SelfBurden)))
		donationCredit = before.Sub(residentTax)
	}

	gross := inputs.GrossIncome.Add(inputs.MiscIncome)
	net := gross.Sub(d.SocialInsurance).Sub(incomeTax).Sub(residentTax)

	ta.Logger.Debugf("tax assembly: total income %s, taxable %s/%s, income tax %s (loan credit %s), resident tax %s",
		d.TotalIncome, taxableIncome, taxableResident, incomeTax, loanCredit, residentTax)

	return domain.TaxResult{
		GrossIncome:               gross,
		EmploymentDeduction:       d.EmploymentDeduction,
		SocialInsurance:           d.SocialInsurance,
		TaxableIncome:             taxableIncome,
		TaxableResidentIncome:     taxableResident,
		IncomeTax:                 incomeTax,
		ResidentTax:               residentTax,
		NetIncome:                 net,
		BasicDeductionIncome:      d.BasicIncome,
		BasicDeductionResident:    d.BasicResident,
		TotalIncomeDeductions:     incomeDeductions,
		MedicalDeduction:          d.Medical,
		AdjustmentDeduction:       adjustment,
		HousingLoanCredit:         incomeTaxBeforeCredit.Sub(incomeTax),
		HousingLoanCreditResident: residentLoanCredit,
		DonationCreditResident:    donationCredit,
	}
}
