package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/transform"
	"github.com/rgehrsitz/jptax/pkg/yen"
	"github.com/shopspring/decimal"
)

// SweepPoint is the donation limit at one salary
type SweepPoint struct {
	GrossIncome decimal.Decimal     `json:"gross_income"`
	Optimum     *OptimizationResult `json:"optimum"`
}

// SweepResult holds donation limits across a range of salaries
type SweepResult struct {
	Points          []SweepPoint `json:"points"`
	Recommendations []string     `json:"recommendations"`
}

// SweepDonationLimits computes the donation limit of base at each gross salary, keeping
// every other input fixed.
func (s *Solver) SweepDonationLimits(ctx context.Context, base domain.TaxInputs, salaries []decimal.Decimal) (*SweepResult, error) {
	if len(salaries) == 0 {
		return nil, &BreakEvenError{Operation: "sweep_donation_limits", Message: "at least one salary is required"}
	}

	sweep := &SweepResult{Points: make([]SweepPoint, 0, len(salaries))}
	for _, salary := range salaries {
		inputs, err := transform.ApplyTransforms(base, []transform.InputTransform{&transform.SetGrossIncome{Amount: salary}})
		if err != nil {
			return nil, &BreakEvenError{Operation: "sweep_donation_limits", Message: "invalid salary", Cause: err}
		}

		res, err := s.Optimize(ctx, OptimizationRequest{Base: inputs, Target: OptimizeDonation})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "sweep_donation_limits",
				Message:   fmt.Sprintf("salary %s", salary.StringFixed(0)),
				Cause:     err,
			}
		}
		sweep.Points = append(sweep.Points, SweepPoint{GrossIncome: salary, Optimum: res})
	}

	sweep.Recommendations = s.generateSweepRecommendations(sweep)
	return sweep, nil
}

func (s *Solver) generateSweepRecommendations(sweep *SweepResult) []string {
	var recommendations []string

	for _, p := range sweep.Points {
		if p.Optimum.OptimalValue.IsZero() {
			recommendations = append(recommendations,
				fmt.Sprintf("At a salary of %s a donation does not pay off", yen.Format(p.GrossIncome)))
		}
	}

	if len(sweep.Points) >= 2 {
		first := sweep.Points[0]
		last := sweep.Points[len(sweep.Points)-1]
		salaryDelta := last.GrossIncome.Sub(first.GrossIncome)
		if salaryDelta.IsPositive() {
			limitDelta := last.Optimum.OptimalValue.Sub(first.Optimum.OptimalValue)
			per := limitDelta.Mul(decimal.NewFromInt(1000000)).Div(salaryDelta).Floor()
			recommendations = append(recommendations,
				fmt.Sprintf("Each additional ¥1,000,000 of salary raises the limit by about %s", yen.Format(per)))
		}
	}

	return recommendations
}
