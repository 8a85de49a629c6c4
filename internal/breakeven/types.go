package breakeven

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what input the solver searches over
type OptimizationTarget string

const (
	// OptimizeDonation finds the largest furusato donation whose tax benefit still covers
	// its cost above the self burden.
	OptimizeDonation OptimizationTarget = "donation"
	// OptimizeSalary finds the smallest gross salary reaching a target take-home pay.
	OptimizeSalary OptimizationTarget = "salary"
)

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base   domain.TaxInputs
	Target OptimizationTarget

	// TargetNetIncome is required for OptimizeSalary.
	TargetNetIncome *decimal.Decimal `json:"target_net_income,omitempty"`

	// Search bounds; zero values select the solver defaults.
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`

	MaxIterations int
	Tolerance     decimal.Decimal // Convergence width and rounding unit
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Target          OptimizationTarget  `json:"target"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// OptimalValue is the donation limit or the required salary.
	OptimalValue decimal.Decimal `json:"optimal_value"`

	BaseTotalTax decimal.Decimal  `json:"base_total_tax"`
	Result       domain.TaxResult `json:"result"`

	// Benefit and Cost describe the donation at the limit: total tax saved vs. the
	// donation above the self burden.
	Benefit decimal.Decimal `json:"benefit"`
	Cost    decimal.Decimal `json:"cost"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance; zero uses the rule set's
	MaxIterations int
	// SalaryCap bounds the salary search.
	SalaryCap decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
		SalaryCap:     decimal.NewFromInt(100000000),
	}
}

// Validate checks if the request is internally consistent
func (r *OptimizationRequest) Validate() error {
	switch r.Target {
	case OptimizeDonation:
	case OptimizeSalary:
		if r.TargetNetIncome == nil {
			return &BreakEvenError{Operation: "validate_request", Message: "target net income is required for salary search"}
		}
		if r.TargetNetIncome.IsNegative() {
			return &BreakEvenError{Operation: "validate_request", Message: "target net income cannot be negative"}
		}
	default:
		return &BreakEvenError{Operation: "validate_request", Message: "unsupported optimization target: " + string(r.Target)}
	}

	if r.Min.IsNegative() || r.Max.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "search bounds cannot be negative"}
	}
	if !r.Max.IsZero() && r.Min.GreaterThan(r.Max) {
		return &BreakEvenError{Operation: "validate_request", Message: "min cannot be greater than max"}
	}
	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
