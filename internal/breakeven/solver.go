package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jptax/internal/calculation"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver runs binary searches over a single tax input
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// FurusatoLimit returns the largest cost-effective donation for inputs, a non-negative
// multiple of the search tolerance. It never fails; solver errors yield zero.
func (s *Solver) FurusatoLimit(inputs domain.TaxInputs) decimal.Decimal {
	res, err := s.Optimize(context.Background(), OptimizationRequest{Base: inputs, Target: OptimizeDonation})
	if err != nil {
		s.CalcEngine.Logger().Errorf("furusato limit: %v", err)
		return decimal.Zero
	}
	return res.OptimalValue
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.tolerance()
	}

	switch req.Target {
	case OptimizeDonation:
		return s.optimizeDonation(ctx, req)
	case OptimizeSalary:
		return s.optimizeSalary(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

func (s *Solver) tolerance() decimal.Decimal {
	if s.Options.Tolerance.IsPositive() {
		return s.Options.Tolerance
	}
	if t := s.CalcEngine.Rules.Donation.SearchTolerance; t.IsPositive() {
		return t
	}
	return decimal.NewFromInt(1000)
}

// withDonation evaluates the inputs with the donation replaced
func (s *Solver) withDonation(base domain.TaxInputs, amount decimal.Decimal) (domain.TaxResult, error) {
	inputs, err := transform.ApplyTransforms(base, []transform.InputTransform{&transform.SetDonation{Amount: amount}})
	if err != nil {
		return domain.TaxResult{}, err
	}
	return s.CalcEngine.CalculateTaxes(inputs), nil
}

// optimizeDonation searches [min, max] for the highest donation d with
// baseTax - tax(d) >= d - selfBurden. Benefit is assumed monotone within the range.
func (s *Solver) optimizeDonation(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	rules := s.CalcEngine.Rules.Donation

	base, err := s.withDonation(req.Base, decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_donation", Message: "failed to clear donation", Cause: err}
	}
	baseTax := base.TotalTax()

	low := req.Min
	high := req.Max
	if high.IsZero() {
		high = rules.SearchCap
	}

	limit := decimal.Zero
	iterations := 0
	converged := true

	for high.Sub(low).GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			converged = false
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two).Floor()
		cost := mid.Sub(rules.SelfBurden)
		if !cost.IsPositive() {
			low = mid
			continue
		}

		res, err := s.withDonation(req.Base, mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_donation", Message: "failed to apply donation", Cause: err}
		}

		if baseTax.Sub(res.TotalTax()).GreaterThanOrEqual(cost) {
			limit = mid
			low = mid
		} else {
			high = mid
		}
	}

	limit = limit.Div(req.Tolerance).Floor().Mul(req.Tolerance)
	atLimit, err := s.withDonation(req.Base, limit)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_donation", Message: "failed to evaluate limit", Cause: err}
	}

	result := &OptimizationResult{
		Request:      req,
		Target:       OptimizeDonation,
		Success:      converged,
		Iterations:   iterations,
		OptimalValue: limit,
		BaseTotalTax: baseTax,
		Result:       atLimit,
		Benefit:      baseTax.Sub(atLimit.TotalTax()),
		Cost:         decimal.Max(decimal.Zero, limit.Sub(rules.SelfBurden)),
	}
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Binary search converged within ¥%s", req.Tolerance.StringFixed(0))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}

	s.CalcEngine.Logger().Debugf("donation limit %s after %d iterations (benefit %s, cost %s)",
		limit, iterations, result.Benefit, result.Cost)
	return result, nil
}

// optimizeSalary searches for the smallest gross salary whose take-home pay reaches the
// target. The answer is rounded up to the tolerance.
func (s *Solver) optimizeSalary(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	target := *req.TargetNetIncome

	netAt := func(gross decimal.Decimal) (domain.TaxResult, error) {
		inputs, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{&transform.SetGrossIncome{Amount: gross}})
		if err != nil {
			return domain.TaxResult{}, err
		}
		return s.CalcEngine.CalculateTaxes(inputs), nil
	}

	low := req.Min
	high := req.Max
	if high.IsZero() {
		high = s.Options.SalaryCap
	}

	top, err := netAt(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_salary", Message: "failed to apply salary", Cause: err}
	}
	if top.NetIncome.LessThan(target) {
		return nil, &BreakEvenError{
			Operation: "optimize_salary",
			Message:   fmt.Sprintf("target take-home %s is not reachable below a salary of %s", target.StringFixed(0), high.StringFixed(0)),
		}
	}

	iterations := 0
	converged := true
	for high.Sub(low).GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			converged = false
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two).Floor()
		res, err := netAt(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_salary", Message: "failed to apply salary", Cause: err}
		}
		if res.NetIncome.GreaterThanOrEqual(target) {
			high = mid
		} else {
			low = mid
		}
	}

	salary := high.Div(req.Tolerance).Ceil().Mul(req.Tolerance)
	atSalary, err := netAt(salary)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_salary", Message: "failed to evaluate salary", Cause: err}
	}

	result := &OptimizationResult{
		Request:      req,
		Target:       OptimizeSalary,
		Success:      converged,
		Iterations:   iterations,
		OptimalValue: salary,
		BaseTotalTax: s.CalcEngine.TotalTax(req.Base),
		Result:       atSalary,
	}
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Converged to target take-home within ¥%s", req.Tolerance.StringFixed(0))
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}
