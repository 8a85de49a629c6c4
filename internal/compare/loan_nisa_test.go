package compare

import (
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompareLoanVsNisa(t *testing.T) {
	result := CompareLoanVsNisa(
		decimal.NewFromInt(30000000),
		decimal.NewFromInt(50000),
		decimal.RequireFromString("0.7"),
		decimal.NewFromInt(4),
		10,
	)

	assert.True(t, result.TotalPrincipal.Equal(decimal.NewFromInt(6000000)), "principal: %s", result.TotalPrincipal)
	assert.True(t, result.LoanSavings.Equal(decimal.NewFromInt(213110)), "loan savings: %s", result.LoanSavings)
	assert.True(t, result.NisaGains.Equal(decimal.NewFromInt(1362490)), "nisa gains: %s", result.NisaGains)
	assert.True(t, result.Difference.Equal(decimal.NewFromInt(1149379)), "difference: %s", result.Difference)
	assert.Equal(t, domain.RecommendNISA, result.Recommendation)
}

func TestCompareLoanVsNisa_EqualRates(t *testing.T) {
	rate := decimal.RequireFromString("0.7")

	result := CompareLoanVsNisa(decimal.NewFromInt(3000000), decimal.NewFromInt(50000), rate, rate, 10)

	assert.Equal(t, domain.RecommendEven, result.Recommendation)
	assert.True(t, result.Difference.IsZero())
}

func TestCompareLoanVsNisa_LoanWins(t *testing.T) {
	result := CompareLoanVsNisa(decimal.NewFromInt(3000000), decimal.NewFromInt(50000),
		decimal.NewFromInt(3), decimal.NewFromInt(1), 10)

	assert.Equal(t, domain.RecommendLoan, result.Recommendation)
	assert.True(t, result.Difference.IsNegative())
}

func TestCompareLoanVsNisa_ZeroRates(t *testing.T) {
	result := CompareLoanVsNisa(decimal.Zero, decimal.NewFromInt(10000), decimal.Zero, decimal.Zero, 5)

	assert.True(t, result.LoanSavings.IsZero())
	assert.True(t, result.NisaGains.IsZero())
	assert.Equal(t, domain.RecommendEven, result.Recommendation)
	assert.True(t, result.TotalPrincipal.Equal(decimal.NewFromInt(600000)))
}

func TestFutureValue(t *testing.T) {
	assert.True(t, FutureValue(decimal.NewFromInt(100), decimal.Zero, 12).Equal(decimal.NewFromInt(1200)))
	assert.True(t, FutureValue(decimal.NewFromInt(100), decimal.NewFromInt(1), 0).IsZero())
	// 100 + 110 at 10%
	assert.True(t, FutureValue(decimal.NewFromInt(100), decimal.RequireFromString("0.1"), 2).Equal(decimal.NewFromInt(210)))
}
