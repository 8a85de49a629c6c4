package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jptax/internal/breakeven"
	"github.com/rgehrsitz/jptax/internal/calculation"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/transform"
	"github.com/samber/lo"
)

// BaseScenarioName labels the unmodified household in comparisons
const BaseScenarioName = "base"

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	Solver            *breakeven.Solver
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		Solver:            breakeven.NewDefaultSolver(calcEngine),
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates []string // Built-in template names to apply to the household
	Scenarios []string // Names of scenarios from the configuration; empty means none
	// AllScenarios includes every scenario of the configuration.
	AllScenarios bool
}

// variant is one named set of transforms to evaluate
type variant struct {
	name        string
	description string
	transforms  []transform.InputTransform
}

// Compare evaluates the household and each requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	variants := []variant{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		variants = append(variants, variant{
			name:        template.Name,
			description: template.Description,
			transforms:  template.Transforms,
		})
	}

	names := options.Scenarios
	if options.AllScenarios {
		names = lo.Map(config.Scenarios, func(s domain.WhatIfScenario, _ int) string { return s.Name })
	}
	for _, name := range names {
		v, err := ce.scenarioVariant(config, name)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	return ce.run(ctx, config.Household.ToTaxInputs(), variants)
}

// CompareScenarios compares the named configuration scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	scenarioNames []string,
) (*ComparisonSet, error) {
	return ce.Compare(ctx, config, CompareOptions{Scenarios: scenarioNames})
}

func (ce *CompareEngine) scenarioVariant(config *domain.Configuration, name string) (variant, error) {
	for _, s := range config.Scenarios {
		if s.Name != name {
			continue
		}
		transforms, err := ce.TransformRegistry.ParseTransformSpecs(s.Transforms)
		if err != nil {
			return variant{}, fmt.Errorf("scenario %s: %w", name, err)
		}
		return variant{name: s.Name, description: s.Description, transforms: transforms}, nil
	}
	return variant{}, fmt.Errorf("scenario %s not found in configuration", name)
}

func (ce *CompareEngine) run(ctx context.Context, base domain.TaxInputs, variants []variant) (*ComparisonSet, error) {
	baseResult := ce.evaluate(BaseScenarioName, base)

	alternatives := make([]ComparisonResult, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, v.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", v.name, err)
		}

		altResult := ce.evaluate(v.name, modified)
		altResult.Description = v.description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluate(name string, inputs domain.TaxInputs) ComparisonResult {
	result := ce.CalcEngine.CalculateTaxes(inputs)
	limit := ce.Solver.FurusatoLimit(inputs)
	return ce.MetricsCalculator.CalculateMetrics(name, inputs, result, limit)
}
