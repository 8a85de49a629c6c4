package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

func yenAmount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestParameterSlider_Clamping(t *testing.T) {
	s := NewParameterSlider("ideco_monthly", "iDeCo", yenAmount(90000), yenAmount(0), yenAmount(68000), yenAmount(1000))
	if !s.Value.Equal(yenAmount(68000)) {
		t.Fatalf("Expected initial value clamped to 68000, got %s", s.Value)
	}

	s.Increment()
	if !s.Value.Equal(yenAmount(68000)) {
		t.Errorf("Increment past max should stay at 68000, got %s", s.Value)
	}

	s.SetValue(yenAmount(500))
	s.Decrement()
	if !s.Value.IsZero() {
		t.Errorf("Decrement below min should stop at 0, got %s", s.Value)
	}

	s.Increment()
	s.Increment()
	if !s.Value.Equal(yenAmount(2000)) {
		t.Errorf("Expected 2000 after two steps, got %s", s.Value)
	}
}

func TestParameterSlider_Percentage(t *testing.T) {
	s := NewParameterSlider("salary", "Salary", yenAmount(5000000), yenAmount(0), yenAmount(10000000), yenAmount(100000))
	if got := s.Percentage(); got != 0.5 {
		t.Errorf("Expected 0.5, got %v", got)
	}

	flat := NewParameterSlider("flat", "Flat", yenAmount(1), yenAmount(1), yenAmount(1), yenAmount(1))
	if got := flat.Percentage(); got != 0 {
		t.Errorf("Expected 0 for an empty range, got %v", got)
	}
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("donation", "Furusato Donation", yenAmount(50000), yenAmount(0), yenAmount(1000000), yenAmount(10000)).
		WithDescription("Yearly donation")

	out := s.Render()
	for _, want := range []string{"Furusato Donation", "¥50,000", "¥0", "¥1,000,000", "Yearly donation", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected render to contain %q:\n%s", want, out)
		}
	}

	s.SetFocused(true)
	if !strings.HasPrefix(s.RenderCompact(), "▸ ") {
		t.Errorf("Focused compact render should start with a cursor: %q", s.RenderCompact())
	}
}

func TestNewYenCard(t *testing.T) {
	tests := []struct {
		name           string
		value, ref     int64
		higherIsBetter bool
		wantTrend      bool
		wantPositive   bool
		wantChange     string
	}{
		{"take-home up", 3944476, 3891575, true, true, true, "+¥52,901"},
		{"tax up", 400000, 358425, false, true, false, "+¥41,575"},
		{"tax down", 300000, 358425, false, true, true, "-¥58,425"},
		{"unchanged", 264000, 264000, true, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewYenCard("Metric", yenAmount(tt.value), yenAmount(tt.ref), tt.higherIsBetter)
			if !tt.wantTrend {
				if card.Trend != nil {
					t.Errorf("Expected no trend, got %+v", card.Trend)
				}
				return
			}
			if card.Trend == nil {
				t.Fatal("Expected a trend")
			}
			if card.Trend.IsPositive != tt.wantPositive {
				t.Errorf("Expected IsPositive %v, got %v", tt.wantPositive, card.Trend.IsPositive)
			}
			if card.Trend.Change != tt.wantChange {
				t.Errorf("Expected change %q, got %q", tt.wantChange, card.Trend.Change)
			}
		})
	}
}

func TestMetricGrid(t *testing.T) {
	if MetricGrid(nil, 2) != "" {
		t.Error("Expected empty grid for no cards")
	}

	cards := []*MetricCard{
		NewMetricCard("Income Tax", "¥117,925"),
		NewMetricCard("Resident Tax", "¥240,500"),
		NewMetricCard("Furusato Limit", "¥264,000").WithDescription("self-burden ¥2,000"),
	}
	out := MetricGrid(cards, 2)
	for _, want := range []string{"Income Tax", "¥240,500", "self-burden"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected grid to contain %q", want)
		}
	}
}

func TestScenarioList(t *testing.T) {
	if !strings.Contains(ScenarioList(nil), "No scenarios") {
		t.Error("Expected placeholder for no outcomes")
	}

	outcomes := []domain.ScenarioOutcome{
		{Name: "ideco_23k", NetIncomeDiff: yenAmount(50879), TotalTaxDiff: yenAmount(-50879), FurusatoLimit: yenAmount(240000)},
		{Name: "donate_50k", Description: "Donate 50,000 yen", NetIncomeDiff: yenAmount(52901), TotalTaxDiff: yenAmount(-52901), FurusatoLimit: yenAmount(264000)},
	}
	out := ScenarioList(outcomes)

	if !strings.Contains(out, "donate_50k ★") {
		t.Errorf("Expected the best take-home to be starred:\n%s", out)
	}
	if strings.Contains(out, "ideco_23k ★") {
		t.Error("Only one outcome should be starred")
	}
	if !strings.Contains(out, "Take-home +¥52,901") {
		t.Errorf("Expected take-home highlight:\n%s", out)
	}
}
