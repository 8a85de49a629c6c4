package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, as used by the CLI and
// the scenarios section of the input file.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_salary", createSetGrossIncome)
	registry.Register("adjust_salary", createAdjustGrossIncome)
	registry.Register("set_ideco", createSetPensionContribution)
	registry.Register("set_donation", createSetDonation)
	registry.Register("set_spouse", createSetSpouse)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("adjust_dependents", createAdjustDependents)
	registry.Register("set_loan", createSetLoanBalance)
	registry.Register("set_medical", createSetMedicalExpenses)
	registry.Register("set_insurance", createSetInsurancePremiums)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := lo.Keys(r.factories)
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_dependents:general=1,specific=1"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses every spec, stopping at the first error.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]InputTransform, error) {
	transforms := make([]InputTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func optionalInt(key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func optionalDecimal(key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createSetGrossIncome(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_salary", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetGrossIncome{Amount: amount}, nil
}

func createAdjustGrossIncome(params map[string]string) (InputTransform, error) {
	percent, err := requireDecimal("adjust_salary", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustGrossIncome{Percent: percent}, nil
}

func createSetPensionContribution(params map[string]string) (InputTransform, error) {
	monthly, err := requireDecimal("set_ideco", "monthly", params)
	if err != nil {
		return nil, err
	}
	return &SetPensionContribution{Monthly: monthly}, nil
}

func createSetDonation(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_donation", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetDonation{Amount: amount}, nil
}

func createSetSpouse(params map[string]string) (InputTransform, error) {
	raw, ok := params["enabled"]
	if !ok {
		return nil, fmt.Errorf("set_spouse requires 'enabled' parameter")
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid enabled value: %w", err)
	}
	return &SetSpouse{HasSpouse: enabled}, nil
}

func createSetDependents(params map[string]string) (InputTransform, error) {
	general, err := optionalInt("general", params)
	if err != nil {
		return nil, err
	}
	specific, err := optionalInt("specific", params)
	if err != nil {
		return nil, err
	}
	return &SetDependents{General: general, Specific: specific}, nil
}

func createAdjustDependents(params map[string]string) (InputTransform, error) {
	general, err := optionalInt("general", params)
	if err != nil {
		return nil, err
	}
	specific, err := optionalInt("specific", params)
	if err != nil {
		return nil, err
	}
	return &AdjustDependents{General: general, Specific: specific}, nil
}

func createSetLoanBalance(params map[string]string) (InputTransform, error) {
	balance, err := requireDecimal("set_loan", "balance", params)
	if err != nil {
		return nil, err
	}
	t := &SetLoanBalance{Balance: balance}
	if raw, ok := params["period"]; ok {
		period, err := domain.ParseLoanPeriod(raw)
		if err != nil {
			return nil, err
		}
		t.Period = period
	}
	return t, nil
}

func createSetMedicalExpenses(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_medical", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetMedicalExpenses{Amount: amount}, nil
}

func createSetInsurancePremiums(params map[string]string) (InputTransform, error) {
	life, err := optionalDecimal("life", params)
	if err != nil {
		return nil, err
	}
	quake, err := optionalDecimal("earthquake", params)
	if err != nil {
		return nil, err
	}
	return &SetInsurancePremiums{Life: life, Earthquake: quake}, nil
}
