package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the tax calculations for one rule set. It holds no
// mutable state once built and is safe for concurrent use.
type CalculationEngine struct {
	Rules     domain.RuleSet
	Assembler *TaxAssembler
	Debug     bool // Log a summary of every calculation
	logger    Logger
}

// NewCalculationEngine creates an engine with the current rule set
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultRuleSet())
}

// NewCalculationEngineWithRules creates an engine for an explicit rule set
func NewCalculationEngineWithRules(rules domain.RuleSet) *CalculationEngine {
	return &CalculationEngine{
		Rules:     rules,
		Assembler: NewTaxAssembler(rules),
		logger:    NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.logger = l
	ce.Assembler.Logger = l
}

// Logger returns the installed logger
func (ce *CalculationEngine) Logger() Logger {
	return ce.logger
}

// CalculateTaxes computes income tax, resident tax and take-home pay. It never fails.
func (ce *CalculationEngine) CalculateTaxes(inputs domain.TaxInputs) domain.TaxResult {
	result := ce.Assembler.Calculate(inputs)
	if ce.Debug {
		ce.logger.Debugf("tax year %d: gross %s, social insurance %s, income tax %s, resident tax %s, net %s",
			ce.Rules.Metadata.TaxYear, result.GrossIncome, result.SocialInsurance,
			result.IncomeTax, result.ResidentTax, result.NetIncome)
	}
	return result
}

// TotalTax is a shorthand for CalculateTaxes(inputs).TotalTax().
func (ce *CalculationEngine) TotalTax(inputs domain.TaxInputs) decimal.Decimal {
	return ce.Assembler.Calculate(inputs).TotalTax()
}

// CalculateIncomeTax returns the income tax on a taxable income
func (ce *CalculationEngine) CalculateIncomeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	return ce.Assembler.IncomeTax(taxableIncome)
}

// CalculateResidentTax returns the resident tax on a taxable resident income, before the
// adjustment deduction and credits.
func (ce *CalculationEngine) CalculateResidentTax(taxableResidentIncome decimal.Decimal) decimal.Decimal {
	return ce.Assembler.ResidentTax(taxableResidentIncome)
}

// Deductions returns the resolved deduction components for inputs
func (ce *CalculationEngine) Deductions(inputs domain.TaxInputs) DeductionBreakdown {
	return ce.Assembler.Deductions.Resolve(inputs)
}
