package compare

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// growthPrecision bounds the digits carried while compounding month by month.
const growthPrecision = 20

// CompareLoanVsNisa compares prepaying a housing loan with investing the same monthly
// surplus. Avoided loan interest acts as a return at the loan rate, so both sides are
// ordinary annuities over the same principal; only the gains are compared.
//
// The loan balance is not used to cap prepayments.
func CompareLoanVsNisa(loanBalance, monthlySurplus, loanRatePercent, nisaRatePercent decimal.Decimal, years int) domain.LoanVsNisaResult {
	months := max(0, years*12)
	principal := monthlySurplus.Mul(decimal.NewFromInt(int64(months)))

	loanInterestSaved := FutureValue(monthlySurplus, monthlyRate(loanRatePercent), months).Sub(principal)
	nisaGains := FutureValue(monthlySurplus, monthlyRate(nisaRatePercent), months).Sub(principal)

	recommendation := domain.RecommendEven
	switch nisaGains.Cmp(loanInterestSaved) {
	case 1:
		recommendation = domain.RecommendNISA
	case -1:
		recommendation = domain.RecommendLoan
	}

	return domain.LoanVsNisaResult{
		LoanSavings:    loanInterestSaved.Floor(),
		NisaGains:      nisaGains.Floor(),
		Difference:     nisaGains.Sub(loanInterestSaved).Floor(),
		Recommendation: recommendation,
		TotalPrincipal: principal.Floor(),
	}
}

// FutureValue returns the value after n monthly payments compounding at rate:
// payment * ((1+rate)^n - 1) / rate, or payment * n when rate is zero.
func FutureValue(payment, rate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}

	growth := decimal.NewFromInt(1)
	factor := decimal.NewFromInt(1).Add(rate)
	for i := 0; i < n; i++ {
		growth = growth.Mul(factor).Round(growthPrecision)
	}
	return payment.Mul(growth.Sub(decimal.NewFromInt(1))).Div(rate)
}

func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(monthsPerYear)
}
