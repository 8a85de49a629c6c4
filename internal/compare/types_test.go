package compare

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func yenAmount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func sampleResult(name string, net, incomeTax, residentTax, limit int64) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		NetIncome:     yenAmount(net),
		IncomeTax:     yenAmount(incomeTax),
		ResidentTax:   yenAmount(residentTax),
		TotalTax:      yenAmount(incomeTax + residentTax),
		FurusatoLimit: yenAmount(limit),
	}
}

func TestCalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()
	base := sampleResult("base", 4000000, 100000, 200000, 250000)
	alt := sampleResult("alt", 4040000, 80000, 180000, 240000)

	got := mc.CalculateComparison(alt, base)

	if !got.NetIncomeDiffFromBase.Equal(yenAmount(40000)) {
		t.Errorf("Expected net diff 40000, got %s", got.NetIncomeDiffFromBase)
	}
	if !got.NetIncomePctFromBase.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected 1%% change, got %s", got.NetIncomePctFromBase)
	}
	if !got.IncomeTaxDiffFromBase.Equal(yenAmount(-20000)) || !got.ResidentTaxDiffFromBase.Equal(yenAmount(-20000)) {
		t.Errorf("Unexpected tax diffs: %s / %s", got.IncomeTaxDiffFromBase, got.ResidentTaxDiffFromBase)
	}
	if !got.TotalTaxDiffFromBase.Equal(yenAmount(-40000)) {
		t.Errorf("Expected total tax diff -40000, got %s", got.TotalTaxDiffFromBase)
	}
	if !got.FurusatoLimitDiff.Equal(yenAmount(-10000)) {
		t.Errorf("Expected limit diff -10000, got %s", got.FurusatoLimitDiff)
	}
}

func TestCalculateComparison_ZeroBase(t *testing.T) {
	mc := NewMetricsCalculator()
	got := mc.CalculateComparison(sampleResult("alt", 1000, 0, 0, 0), sampleResult("base", 0, 0, 0, 0))

	if !got.NetIncomePctFromBase.IsZero() {
		t.Errorf("Expected no percentage against a zero base, got %s", got.NetIncomePctFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	base := sampleResult("base", 4000000, 100000, 200000, 250000)
	richer := sampleResult("richer", 4100000, 90000, 210000, 260000)
	cheaper := sampleResult("cheaper", 4050000, 60000, 150000, 200000)
	over := sampleResult("over", 3900000, 100000, 200000, 250000)
	over.Donation = yenAmount(300000)

	recs := GenerateRecommendations(&ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{richer, cheaper, over},
	})

	want := []string{
		"Best Take-Home: richer provides ¥100,000 more per year than the base household",
		"Lowest Taxes: cheaper saves ¥90,000 in income and resident tax",
		"Over Limit: over donates ¥300,000, above its furusato limit of ¥250,000",
	}
	if len(recs) != len(want) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(want), len(recs), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want[i], recs[i])
		}
	}
}

func TestGenerateRecommendations_NothingBetter(t *testing.T) {
	base := sampleResult("base", 4000000, 100000, 200000, 250000)
	worse := sampleResult("worse", 3900000, 150000, 250000, 250000)

	recs := GenerateRecommendations(&ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{worse},
	})
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}

	if recs := GenerateRecommendations(&ComparisonSet{}); recs == nil || len(recs) != 0 {
		t.Errorf("Expected empty non-nil slice without a base, got %v", recs)
	}
}

func TestGenerateRecommendations_BaseOverLimit(t *testing.T) {
	base := sampleResult("base", 4000000, 100000, 200000, 50000)
	base.Donation = yenAmount(80000)
	alt := sampleResult("alt", 4000000, 100000, 200000, 50000)

	recs := GenerateRecommendations(&ComparisonSet{
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
	})
	if len(recs) != 1 || !strings.HasPrefix(recs[0], "Over Limit: base donates ¥80,000") {
		t.Errorf("Expected base over-limit warning, got %v", recs)
	}
}
