package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(365)
)

// ConsumptionTax returns monthly spending * 12 * effective rate, floored.
func (ce *CalculationEngine) ConsumptionTax(monthlySpending decimal.Decimal) decimal.Decimal {
	return ce.consumptionTax(monthlySpending).Floor()
}

func (ce *CalculationEngine) consumptionTax(monthlySpending decimal.Decimal) decimal.Decimal {
	return monthlySpending.Mul(monthsPerYear).Mul(ce.Rules.OtherTaxes.ConsumptionEffectiveRate)
}

// TobaccoTax returns sticks per day * 365 * per-stick tax, floored.
func (ce *CalculationEngine) TobaccoTax(dailySticks int) decimal.Decimal {
	return ce.tobaccoTax(dailySticks).Floor()
}

func (ce *CalculationEngine) tobaccoTax(dailySticks int) decimal.Decimal {
	return decimal.NewFromInt(int64(dailySticks)).Mul(daysPerYear).Mul(ce.Rules.OtherTaxes.TobaccoPerStick)
}

// GasolineTax estimates the fuel tax embedded in a yearly fuel spend: liters bought at the
// reference price times the per-liter tax. Zero spend yields zero.
func (ce *CalculationEngine) GasolineTax(monthlyCost decimal.Decimal) decimal.Decimal {
	return ce.gasolineTax(monthlyCost).Floor()
}

func (ce *CalculationEngine) gasolineTax(monthlyCost decimal.Decimal) decimal.Decimal {
	rules := ce.Rules.OtherTaxes
	if !monthlyCost.IsPositive() || !rules.GasolineReferencePrice.IsPositive() {
		return decimal.Zero
	}
	liters := monthlyCost.Mul(monthsPerYear).Div(rules.GasolineReferencePrice)
	return liters.Mul(rules.GasolineTaxPerLiter)
}

// CarTax returns the annual automobile tax for a category. Categories missing from the
// rule table resolve to zero; reject unknown keys earlier with domain.ParseCarCategory.
func (ce *CalculationEngine) CarTax(category domain.CarCategory) decimal.Decimal {
	rate, ok := ce.Rules.OtherTaxes.CarTaxRates[category]
	if !ok {
		if category != "" {
			ce.logger.Warnf("no car tax rate for category %q", category)
		}
		return decimal.Zero
	}
	return rate
}

// InheritanceTaxYearly estimates inheritance tax on assets split evenly between heirs,
// amortized over the rule set's horizon. The exemption and the split count at least one
// heir; the per-heir tax is multiplied back by the actual count, so no heirs means no tax.
func (ce *CalculationEngine) InheritanceTaxYearly(assets decimal.Decimal, heirs int) decimal.Decimal {
	return ce.inheritanceTaxYearly(assets, heirs).Floor()
}

func (ce *CalculationEngine) inheritanceTaxYearly(assets decimal.Decimal, heirs int) decimal.Decimal {
	rules := ce.Rules.OtherTaxes
	heirCount := decimal.NewFromInt(int64(max(1, heirs)))

	exemption := rules.InheritanceBaseExemption.Add(rules.InheritancePerHeir.Mul(heirCount))
	taxable := nonNegative(assets.Sub(exemption))
	if taxable.IsZero() || heirs <= 0 {
		return decimal.Zero
	}

	perHeir := taxable.Div(heirCount)
	total := nonNegative(EvaluateBrackets(perHeir, rules.InheritanceBrackets)).Mul(decimal.NewFromInt(int64(heirs)))
	years := max(1, rules.InheritanceAmortizeYears)
	return total.Div(decimal.NewFromInt(int64(years)))
}

// CalculateOtherTaxes estimates the six auxiliary household taxes. Each component is
// floored on its own and the total is the floor of the unrounded sum.
func (ce *CalculationEngine) CalculateOtherTaxes(inputs domain.OtherTaxInputs) domain.OtherTaxResult {
	raw := []decimal.Decimal{
		ce.consumptionTax(inputs.MonthlyConsumptionSpending),
		ce.tobaccoTax(inputs.DailyTobaccoSticks),
		ce.gasolineTax(inputs.MonthlyGasolineCost),
		inputs.YearlyPropertyTax,
		ce.CarTax(inputs.CarCategory),
		ce.inheritanceTaxYearly(inputs.InheritanceAssets, inputs.InheritanceHeirs),
	}
	floored := lo.Map(raw, func(v decimal.Decimal, _ int) decimal.Decimal { return v.Floor() })

	return domain.OtherTaxResult{
		ConsumptionTax:       floored[0],
		TobaccoTax:           floored[1],
		GasolineTax:          floored[2],
		PropertyTax:          floored[3],
		CarTax:               floored[4],
		InheritanceTaxYearly: floored[5],
		TotalOtherTax:        decimal.Sum(decimal.Zero, raw...).Floor(),
	}
}
