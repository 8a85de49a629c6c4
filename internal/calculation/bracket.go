package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateBrackets applies a quick-calculation table: the first tier whose upper bound
// covers amount yields amount*Rate - Deduction. The last tier is unbounded. Non-positive
// amounts evaluate to zero.
func EvaluateBrackets(amount decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !amount.IsPositive() || len(brackets) == 0 {
		return decimal.Zero
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		if i == last || amount.LessThanOrEqual(b.Max) {
			return amount.Mul(b.Rate).Sub(b.Deduction)
		}
	}
	return decimal.Zero
}

// evaluateLinear applies the first linear tier covering amount.
func evaluateLinear(amount decimal.Decimal, tiers []domain.LinearTier) decimal.Decimal {
	if len(tiers) == 0 {
		return decimal.Zero
	}
	last := len(tiers) - 1
	for i, t := range tiers {
		if i == last || amount.LessThanOrEqual(t.Max) {
			return amount.Mul(t.Rate).Add(t.Fixed)
		}
	}
	return decimal.Zero
}

// evaluateStep returns the amount of the first step covering total, or zero above the
// last step.
func evaluateStep(total decimal.Decimal, tiers []domain.StepTier) decimal.Decimal {
	for _, t := range tiers {
		if total.LessThanOrEqual(t.Max) {
			return t.Amount
		}
	}
	return decimal.Zero
}

// floorTo rounds amount down to a multiple of unit
func floorTo(amount, unit decimal.Decimal) decimal.Decimal {
	if !unit.IsPositive() {
		return amount.Floor()
	}
	return amount.Div(unit).Floor().Mul(unit)
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
