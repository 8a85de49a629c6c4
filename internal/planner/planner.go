// Package planner runs every estimator for one configuration and assembles the report.
package planner

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jptax/internal/breakeven"
	"github.com/rgehrsitz/jptax/internal/calculation"
	"github.com/rgehrsitz/jptax/internal/compare"
	"github.com/rgehrsitz/jptax/internal/config"
	"github.com/rgehrsitz/jptax/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Planner ties the calculation engine, the limit solver and the comparison engine to
// one rule set.
type Planner struct {
	Engine  *calculation.CalculationEngine
	Solver  *breakeven.Solver
	Compare *compare.CompareEngine
}

// New creates a planner around an engine
func New(engine *calculation.CalculationEngine) *Planner {
	return &Planner{
		Engine:  engine,
		Solver:  breakeven.NewDefaultSolver(engine),
		Compare: compare.NewCompareEngine(engine),
	}
}

// ForConfiguration resolves the configuration's rule set and creates a planner for it.
func ForConfiguration(cfg *domain.Configuration, logger calculation.Logger) (*Planner, error) {
	rules, err := config.ResolveRules(cfg.TaxYear, cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("resolve rules: %w", err)
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logger)
	return New(engine), nil
}

// Run computes every estimate the configuration asks for. Independent parts run
// concurrently; the first failure cancels the rest.
func (p *Planner) Run(ctx context.Context, cfg *domain.Configuration) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputs := cfg.Household.ToTaxInputs()
	report := &domain.Report{
		TaxYear:     p.Engine.Rules.Metadata.TaxYear,
		Assumptions: p.Engine.Rules.Assumptions(),
		Inputs:      inputs,
	}
	logger := p.Engine.Logger()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.Taxes = p.Engine.CalculateTaxes(inputs)
		return nil
	})
	g.Go(func() error {
		report.FurusatoLimit = p.Solver.FurusatoLimit(inputs)
		return nil
	})

	if cfg.LifePlan != nil {
		if cfg.LifePlan.ChildAge != nil {
			age := *cfg.LifePlan.ChildAge
			report.ChildAge = &age
			g.Go(func() error {
				report.ChildGrowth = p.Engine.ChildGrowthSimulation(inputs, age)
				return nil
			})
		}
		terms := cfg.LifePlan.WithDefaults()
		report.ComparisonYears = terms.Years
		g.Go(func() error {
			result := compare.CompareLoanVsNisa(inputs.LoanBalanceYearEnd, terms.MonthlySurplus,
				terms.LoanRatePercent, terms.NisaRatePercent, terms.Years)
			report.LoanVsNisa = &result
			return nil
		})
	}

	if cfg.OtherTaxes != nil {
		otherInputs := *cfg.OtherTaxes
		g.Go(func() error {
			result := p.Engine.CalculateOtherTaxes(otherInputs)
			report.OtherTaxes = &result
			return nil
		})
	}

	if len(cfg.Scenarios) > 0 {
		g.Go(func() error {
			set, err := p.Compare.Compare(gctx, cfg, compare.CompareOptions{AllScenarios: true})
			if err != nil {
				return fmt.Errorf("compare scenarios: %w", err)
			}
			report.Scenarios = set.ToScenarioOutcomes()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Infof("report for tax year %d: take-home %s, furusato limit %s",
		report.TaxYear, report.Taxes.NetIncome, report.FurusatoLimit)
	return report, nil
}
