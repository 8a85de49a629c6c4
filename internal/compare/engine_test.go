package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/jptax/internal/calculation"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{GrossIncome: decimal.NewFromInt(5000000)},
		Scenarios: []domain.WhatIfScenario{
			{
				Name:        "family",
				Description: "Spouse and one teenager",
				Transforms:  []string{"set_spouse:enabled=true", "set_dependents:general=1"},
			},
			{
				Name:       "big_donation",
				Transforms: []string{"set_donation:amount=400000"},
			},
			{
				Name:       "broken",
				Transforms: []string{"set_ideco"},
			},
		},
	}
}

func newTestEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewCalculationEngine())
}

func TestCompare_Templates(t *testing.T) {
	ce := newTestEngine()

	set, err := ce.Compare(context.Background(), testConfiguration(), CompareOptions{
		Templates: []string{"donate_50k", "ideco_23k"},
	})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, BaseScenarioName, set.BaseResult.ScenarioName)
	assert.True(t, set.BaseResult.NetIncome.Equal(decimal.NewFromInt(3891575)), "base net: %s", set.BaseResult.NetIncome)
	assert.True(t, set.BaseResult.FurusatoLimit.Equal(decimal.NewFromInt(264000)))

	require.Len(t, set.AlternativeResults, 2)
	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.NetIncomeDiffFromBase.IsPositive(), "%s should raise take-home", alt.ScenarioName)
		assert.True(t, alt.NetIncomeDiffFromBase.Equal(alt.TotalTaxDiffFromBase.Neg()),
			"%s: take-home moves opposite to tax", alt.ScenarioName)
		assert.True(t, alt.IncomeTaxDiffFromBase.Add(alt.ResidentTaxDiffFromBase).Equal(alt.TotalTaxDiffFromBase))
		assert.NotEmpty(t, alt.Description)
	}

	donation := set.AlternativeResults[0]
	assert.Equal(t, "donate_50k", donation.ScenarioName)
	assert.True(t, donation.NetIncomeDiffFromBase.Equal(decimal.NewFromInt(52901)), "donation diff: %s", donation.NetIncomeDiffFromBase)
	assert.True(t, donation.FurusatoLimitDiff.IsZero(), "existing donations do not change the limit")

	assert.Contains(t, set.Recommendations[0], "Best Take-Home: donate_50k")
}

func TestCompare_ConfigScenarios(t *testing.T) {
	ce := newTestEngine()

	set, err := ce.CompareScenarios(context.Background(), testConfiguration(), []string{"family", "big_donation"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	family := set.AlternativeResults[0]
	assert.Equal(t, "Spouse and one teenager", family.Description)
	assert.True(t, family.TotalTaxDiffFromBase.IsNegative())
	assert.True(t, family.FurusatoLimitDiff.IsNegative(), "deductions shrink the limit")

	assert.Contains(t, set.Recommendations,
		"Over Limit: big_donation donates ¥400,000, above its furusato limit of ¥264,000")
}

func TestCompare_AllScenariosStopsOnBadSpec(t *testing.T) {
	ce := newTestEngine()

	_, err := ce.Compare(context.Background(), testConfiguration(), CompareOptions{AllScenarios: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario broken")
}

func TestCompare_Errors(t *testing.T) {
	ce := newTestEngine()
	cfg := testConfiguration()

	_, err := ce.Compare(context.Background(), cfg, CompareOptions{Templates: []string{"retire_early"}})
	assert.EqualError(t, err, "template retire_early not found")

	_, err = ce.CompareScenarios(context.Background(), cfg, []string{"missing"})
	assert.EqualError(t, err, "scenario missing not found in configuration")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.Compare(ctx, cfg, CompareOptions{Templates: []string{"donate_30k"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_NoAlternatives(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), testConfiguration(), CompareOptions{})
	require.NoError(t, err)

	assert.Empty(t, set.AlternativeResults)
	assert.NotNil(t, set.Recommendations)
	assert.Empty(t, set.Recommendations)
}

func TestComparisonSet_ToScenarioOutcomes(t *testing.T) {
	set, err := newTestEngine().Compare(context.Background(), testConfiguration(), CompareOptions{
		Templates: []string{"donate_30k"},
	})
	require.NoError(t, err)

	outcomes := set.ToScenarioOutcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, "donate_30k", outcomes[0].Name)
	assert.True(t, outcomes[0].NetIncomeDiff.Equal(set.AlternativeResults[0].NetIncomeDiffFromBase))
	assert.True(t, outcomes[0].TotalTaxDiff.Equal(set.AlternativeResults[0].TotalTaxDiffFromBase))
	assert.True(t, outcomes[0].FurusatoLimit.Equal(decimal.NewFromInt(264000)))
}
