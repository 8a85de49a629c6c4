package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records messages for assertions
type TestLogger struct {
	Messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.Messages = append(l.Messages, "DEBUG: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(format string, args ...any) {
	l.Messages = append(l.Messages, "INFO: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.Messages = append(l.Messages, "WARN: "+fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(format string, args ...any) {
	l.Messages = append(l.Messages, "ERROR: "+fmt.Sprintf(format, args...))
}

func yenAmount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertYen(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, yenAmount(want).Equal(got), "%s: want %d, got %s", field, want, got.String())
}

func salaried(gross int64) domain.TaxInputs {
	return domain.NewTaxInputs(yenAmount(gross))
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Assembler, "Should initialize tax assembler")
	assert.NotNil(t, engine.Assembler.Deductions, "Should initialize deduction resolver")
	assert.Equal(t, 2025, engine.Rules.Metadata.TaxYear)
	assert.IsType(t, NopLogger{}, engine.Logger(), "Should default to no-op logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger(), "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger(), "Should be no-op logger")
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	engine.CalculateTaxes(salaried(5000000))

	require.NotEmpty(t, logger.Messages)
	assert.Contains(t, logger.Messages[len(logger.Messages)-1], "tax year 2025")
}

func TestCalculateTaxes_WorkedExample(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.CalculateTaxes(salaried(5000000))

	assertYen(t, 5000000, result.GrossIncome, "gross income")
	assertYen(t, 750000, result.SocialInsurance, "social insurance")
	assertYen(t, 1440000, result.EmploymentDeduction, "employment deduction")
	assertYen(t, 680000, result.BasicDeductionIncome, "basic deduction (income)")
	assertYen(t, 430000, result.BasicDeductionResident, "basic deduction (resident)")
	assertYen(t, 1430000, result.TotalIncomeDeductions, "total income deductions")
	assertYen(t, 2130000, result.TaxableIncome, "taxable income")
	assertYen(t, 2380000, result.TaxableResidentIncome, "taxable resident income")
	assertYen(t, 117925, result.IncomeTax, "income tax")
	assertYen(t, 240500, result.ResidentTax, "resident tax")
	assertYen(t, 2500, result.AdjustmentDeduction, "adjustment deduction")
	assertYen(t, 3891575, result.NetIncome, "net income")
	assertYen(t, 358425, result.TotalTax(), "total tax")
}

func TestCalculateTaxes_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := salaried(7200000)
	inputs.HasSpouse = true
	inputs.SpecificDependents = 1
	inputs.DonationYearly = yenAmount(60000)
	inputs.LoanBalanceYearEnd = yenAmount(25000000)

	first := engine.CalculateTaxes(inputs)
	second := engine.CalculateTaxes(inputs)

	assert.Equal(t, first, second)
}

func TestCalculateTaxes_ZeroIncome(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.CalculateTaxes(salaried(0))

	assertYen(t, 0, result.TaxableIncome, "taxable income")
	assertYen(t, 0, result.IncomeTax, "income tax")
	assertYen(t, 0, result.ResidentTax, "resident tax")
	assertYen(t, 0, result.NetIncome, "net income")
}

func TestCalculateTaxes_NegativeInputsClamp(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := salaried(-1000000)
	inputs.MiscIncome = yenAmount(100000)
	inputs.MiscExpenses = yenAmount(500000)

	result := engine.CalculateTaxes(inputs)

	assertYen(t, 0, result.TaxableIncome, "taxable income")
	assertYen(t, 0, result.IncomeTax, "income tax")
	assertYen(t, 0, result.ResidentTax, "resident tax")
}

func TestCalculateTaxes_Donation(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := salaried(5000000)
	inputs.DonationYearly = yenAmount(50000)

	result := engine.CalculateTaxes(inputs)

	assertYen(t, 1478000, result.TotalIncomeDeductions, "total income deductions")
	assertYen(t, 2082000, result.TaxableIncome, "taxable income")
	assertYen(t, 113024, result.IncomeTax, "income tax")
	assertYen(t, 192500, result.ResidentTax, "resident tax")
	assertYen(t, 48000, result.DonationCreditResident, "donation credit")
}

func TestCalculateTaxes_DonationBelowSelfBurden(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := salaried(5000000)
	inputs.DonationYearly = yenAmount(2000)

	result := engine.CalculateTaxes(inputs)
	base := engine.CalculateTaxes(salaried(5000000))

	assert.Equal(t, base.TotalTax().String(), result.TotalTax().String())
	assertYen(t, 0, result.DonationCreditResident, "donation credit")
}

func TestCalculateTaxes_HousingLoanCredit(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name           string
		gross          int64
		balance        int64
		period         domain.LoanPeriod
		incomeTax      int64
		residentTax    int64
		residentCredit int64
	}{
		{
			name: "credit exhausts income tax, remainder under cap", gross: 5000000, balance: 20000000,
			period: domain.LoanPeriodFrom2022, incomeTax: 0, residentTax: 218425, residentCredit: 22075,
		},
		{
			name: "balance capped at 30M, pre-2022 cap", gross: 5000000, balance: 40000000,
			period: domain.LoanPeriodPre2022, incomeTax: 0, residentTax: 148425, residentCredit: 92075,
		},
		{
			name: "5% of taxable income binds", gross: 3000000, balance: 20000000,
			period: domain.LoanPeriodFrom2022, incomeTax: 0, residentTax: 82000, residentCredit: 34500,
		},
		{
			name: "7% of taxable income binds", gross: 3000000, balance: 20000000,
			period: domain.LoanPeriodPre2022, incomeTax: 0, residentTax: 68200, residentCredit: 48300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := salaried(tt.gross)
			inputs.LoanBalanceYearEnd = yenAmount(tt.balance)
			inputs.LoanPeriod = tt.period

			result := engine.CalculateTaxes(inputs)

			assertYen(t, tt.incomeTax, result.IncomeTax, "income tax")
			assertYen(t, tt.residentTax, result.ResidentTax, "resident tax")
			assertYen(t, tt.residentCredit, result.HousingLoanCreditResident, "resident loan credit")
		})
	}
}

func TestCalculateTaxes_PartialLoanCredit(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := salaried(5000000)
	inputs.LoanBalanceYearEnd = yenAmount(10000000)

	result := engine.CalculateTaxes(inputs)

	// 70,000 credit fits entirely in income tax
	assertYen(t, 47925, result.IncomeTax, "income tax")
	assertYen(t, 70000, result.HousingLoanCredit, "income loan credit")
	assertYen(t, 240500, result.ResidentTax, "resident tax")
	assertYen(t, 0, result.HousingLoanCreditResident, "resident loan credit")
}

func TestCalculateIncomeTax(t *testing.T) {
	engine := NewCalculationEngine()

	assertYen(t, 0, engine.CalculateIncomeTax(decimal.Zero), "zero")
	assertYen(t, 0, engine.CalculateIncomeTax(yenAmount(-500000)), "negative")
	assertYen(t, 99547, engine.CalculateIncomeTax(yenAmount(1950000)), "first boundary")
	assertYen(t, 237382, engine.CalculateIncomeTax(yenAmount(3300000)), "second boundary")
	// 50,000,000*0.45 - 4,796,000 = 17,704,000; *1.021
	assertYen(t, 18075784, engine.CalculateIncomeTax(yenAmount(50000000)), "top bracket")
}

func TestCalculateIncomeTax_Monotonic(t *testing.T) {
	engine := NewCalculationEngine()

	prev := decimal.Zero
	for taxable := int64(0); taxable <= 60000000; taxable += 125000 {
		tax := engine.CalculateIncomeTax(yenAmount(taxable))
		assert.Truef(t, tax.GreaterThanOrEqual(prev), "tax decreased at %d: %s < %s", taxable, tax, prev)
		prev = tax
	}
}

func TestCalculateResidentTax(t *testing.T) {
	engine := NewCalculationEngine()

	assertYen(t, 0, engine.CalculateResidentTax(decimal.Zero), "zero")
	assertYen(t, 128400, engine.CalculateResidentTax(yenAmount(1234000)), "flat rate plus levy")
	assertYen(t, 5000, engine.CalculateResidentTax(yenAmount(9)), "levy only")
}

func TestCalculateTaxes_RuleSet2024(t *testing.T) {
	engine := NewCalculationEngineWithRules(domain.RuleSet2024())

	result := engine.CalculateTaxes(salaried(5000000))

	// Flat 480,000 basic deduction: taxable 3,560,000 - 1,230,000
	assertYen(t, 480000, result.BasicDeductionIncome, "basic deduction")
	assertYen(t, 2330000, result.TaxableIncome, "taxable income")
	assertYen(t, 138345, result.IncomeTax, "income tax")
}
