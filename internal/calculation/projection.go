package calculation

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/transform"
)

// childGrowthEndAge is the age at which the projection stops (exclusive).
const childGrowthEndAge = 23

// ChildGrowthSimulation projects the tax reduction as a child ages through the dependent
// bands. One point is emitted per year offset until the child turns 23. The child's
// current band is removed from the inputs and the future band added; each count is
// floored at 0 before the addition. Children aged 23 or older yield an empty sequence.
func (ce *CalculationEngine) ChildGrowthSimulation(inputs domain.TaxInputs, currentAge int) []domain.ChildGrowthPoint {
	years := childGrowthEndAge - currentAge
	if years <= 0 {
		return []domain.ChildGrowthPoint{}
	}

	startTax := ce.TotalTax(inputs)
	currentBand := domain.BandForAge(currentAge)

	points := make([]domain.ChildGrowthPoint, 0, years)
	for offset := 1; offset <= years; offset++ {
		age := currentAge + offset
		band := domain.BandForAge(age)

		future, err := transform.ApplyTransforms(inputs, []transform.InputTransform{
			transform.MoveDependentBand(currentBand, -1),
			transform.MoveDependentBand(band, 1),
		})
		if err != nil {
			// adjust_dependents never fails validation
			ce.logger.Errorf("child growth year %d: %v", offset, err)
			future = inputs
		}

		total := ce.TotalTax(future)
		points = append(points, domain.ChildGrowthPoint{
			Age:          age,
			YearOffset:   offset,
			TaxReduction: startTax.Sub(total),
			TotalTax:     total,
			IsHighSchool: band == domain.BandGeneral,
			IsCollege:    band == domain.BandSpecific,
		})
	}

	ce.logger.Debugf("child growth from age %d: %d points", currentAge, len(points))
	return points
}
