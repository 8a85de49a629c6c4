package calculation

import (
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateBrackets(t *testing.T) {
	brackets := domain.DefaultRuleSet().IncomeTax.Brackets

	assert.True(t, EvaluateBrackets(decimal.Zero, brackets).IsZero())
	assert.True(t, EvaluateBrackets(yenAmount(-1), brackets).IsZero())
	assert.True(t, EvaluateBrackets(yenAmount(1000000), nil).IsZero())

	// Exactly on a boundary uses the lower tier
	assertYen(t, 97500, EvaluateBrackets(yenAmount(1950000), brackets), "boundary")
	assertYen(t, 97600, EvaluateBrackets(yenAmount(1951000), brackets), "next tier")
	// Above every bound uses the last tier
	assertYen(t, 40204000, EvaluateBrackets(yenAmount(100000000), brackets), "unbounded tier")
}

func TestDeductionResolver_Employment(t *testing.T) {
	dr := NewDeductionResolver(domain.RuleSet2025())
	old := NewDeductionResolver(domain.RuleSet2024())

	tests := []struct {
		gross int64
		want  int64
	}{
		{1000000, 650000},
		{1625000, 650000},
		{1700000, 580000},
		{3000000, 980000},
		{5000000, 1440000},
		{8000000, 1900000},
		{10000000, 1950000},
	}
	for _, tt := range tests {
		assertYen(t, tt.want, dr.EmploymentDeduction(yenAmount(tt.gross)), "employment deduction")
	}

	assertYen(t, 550000, old.EmploymentDeduction(yenAmount(1000000)), "2024 minimum")
}

func TestDeductionResolver_SocialInsurance(t *testing.T) {
	dr := NewDeductionResolver(domain.DefaultRuleSet())

	auto := salaried(4999999)
	assertYen(t, 749999, dr.SocialInsurance(auto), "auto floors")

	manual := salaried(5000000)
	manual.SocialInsuranceMode = domain.SocialInsuranceManual
	manual.SocialInsuranceManual = yenAmount(612345)
	assertYen(t, 612345, dr.SocialInsurance(manual), "manual passes through")
}

func TestDeductionResolver_Insurance(t *testing.T) {
	dr := NewDeductionResolver(domain.DefaultRuleSet())

	life := dr.LifeInsurance(yenAmount(30000))
	assertYen(t, 25000, life.Income, "life income side")
	assertYen(t, 21000, life.Resident, "life resident side")

	life = dr.LifeInsurance(yenAmount(100000))
	assertYen(t, 40000, life.Income, "life income ceiling")
	assertYen(t, 28000, life.Resident, "life resident ceiling")

	life = dr.LifeInsurance(decimal.Zero)
	assert.True(t, life.Income.IsZero())

	quake := dr.EarthquakeInsurance(yenAmount(30000))
	assertYen(t, 30000, quake.Income, "quake income side")
	assertYen(t, 15000, quake.Resident, "quake resident side")

	quake = dr.EarthquakeInsurance(yenAmount(60000))
	assertYen(t, 50000, quake.Income, "quake income cap")
	assertYen(t, 25000, quake.Resident, "quake resident cap")
}

func TestDeductionResolver_Medical(t *testing.T) {
	dr := NewDeductionResolver(domain.DefaultRuleSet())

	assertYen(t, 0, dr.Medical(decimal.Zero, yenAmount(3560000)), "no expenses")
	assertYen(t, 50000, dr.Medical(yenAmount(150000), yenAmount(3560000)), "100,000 floor")
	// Low income: floor(1,000,000*0.05) = 50,000
	assertYen(t, 30000, dr.Medical(yenAmount(80000), yenAmount(1000000)), "5% floor")
	assertYen(t, 0, dr.Medical(yenAmount(40000), yenAmount(1000000)), "below floor")
}

func TestDeductionResolver_BasicIncome(t *testing.T) {
	dr := NewDeductionResolver(domain.RuleSet2025())

	tests := []struct {
		total int64
		want  int64
	}{
		{1000000, 950000},
		{1320000, 950000},
		{3000000, 880000},
		{3560000, 680000},
		{6000000, 630000},
		{10000000, 580000},
		{23800000, 480000},
		{24200000, 320000},
		{24600000, 0},
	}
	for _, tt := range tests {
		assertYen(t, tt.want, dr.BasicIncome(yenAmount(tt.total)), "basic deduction")
	}
}

func TestDeductionResolver_Dependents(t *testing.T) {
	dr := NewDeductionResolver(domain.DefaultRuleSet())

	inputs := salaried(5000000)
	inputs.HasSpouse = true
	inputs.GeneralDependents = 1
	inputs.SpecificDependents = 1

	pair := dr.Dependents(inputs)
	assertYen(t, 1390000, pair.Income, "income side")
	assertYen(t, 1110000, pair.Resident, "resident side")

	inputs.HasSpouse = false
	inputs.GeneralDependents = 0
	inputs.SpecificDependents = 3
	pair = dr.Dependents(inputs)
	assertYen(t, 1890000, pair.Income, "per head, no cap")
}

func TestDeductionResolver_Resolve(t *testing.T) {
	dr := NewDeductionResolver(domain.DefaultRuleSet())

	inputs := salaried(5000000)
	inputs.PensionContributionYearly = yenAmount(276000)
	inputs.MiscIncome = yenAmount(300000)
	inputs.MiscExpenses = yenAmount(100000)
	inputs.DonationYearly = yenAmount(30000)

	b := dr.Resolve(inputs)

	assertYen(t, 3760000, b.TotalIncome, "total income")
	assertYen(t, 28000, b.Donation, "donation deduction")
	// 750,000 + 680,000 + 276,000
	assertYen(t, 1706000, b.IncomeTotal(), "income total")
	// 750,000 + 430,000 + 276,000
	assertYen(t, 1456000, b.ResidentTotal(), "resident total")
}
