package transform

import (
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()

	assert.NotNil(t, registry, "Should create registry")
	assert.NotNil(t, registry.factories, "Should initialize factories map")
	assert.Len(t, registry.factories, 10, "Should have built-in transforms registered")
}

func TestTransformRegistry_Register(t *testing.T) {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	factory := func(params map[string]string) (InputTransform, error) {
		return &SetSpouse{HasSpouse: true}, nil
	}

	registry.Register("test_transform", factory)

	assert.Contains(t, registry.factories, "test_transform", "Should register transform")
	assert.NotNil(t, registry.factories["test_transform"], "Should store factory function")
}

func TestTransformRegistry_Create_UnknownTransform(t *testing.T) {
	registry := NewTransformRegistry()

	transform, err := registry.Create("unknown_transform", map[string]string{})

	assert.Error(t, err, "Should error for unknown transform")
	assert.Nil(t, transform, "Should return nil transform")
	assert.Contains(t, err.Error(), "unknown transform", "Should have specific error message")
}

func TestTransformRegistry_List(t *testing.T) {
	transforms := NewTransformRegistry().List()

	assert.Equal(t, []string{
		"adjust_dependents",
		"adjust_salary",
		"set_dependents",
		"set_donation",
		"set_ideco",
		"set_insurance",
		"set_loan",
		"set_medical",
		"set_salary",
		"set_spouse",
	}, transforms, "Should list sorted transform names")
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()
	base := domain.NewTaxInputs(decimal.NewFromInt(5000000))

	tests := []struct {
		name  string
		spec  string
		check func(t *testing.T, result domain.TaxInputs)
	}{
		{
			name: "salary",
			spec: "set_salary:amount=7200000",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.GrossIncome.Equal(decimal.NewFromInt(7200000)))
			},
		},
		{
			name: "raise",
			spec: "adjust_salary:percent=-10",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.GrossIncome.Equal(decimal.NewFromInt(4500000)))
			},
		},
		{
			name: "ideco",
			spec: "set_ideco:monthly=23000",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.PensionContributionYearly.Equal(decimal.NewFromInt(276000)))
			},
		},
		{
			name: "spouse",
			spec: "set_spouse: enabled = true",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.HasSpouse)
			},
		},
		{
			name: "dependents",
			spec: "set_dependents:general=2,specific=1",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.Equal(t, 2, r.GeneralDependents)
				assert.Equal(t, 1, r.SpecificDependents)
			},
		},
		{
			name: "loan with period",
			spec: "set_loan:balance=30000000,period=2014-2021",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.LoanBalanceYearEnd.Equal(decimal.NewFromInt(30000000)))
				assert.Equal(t, domain.LoanPeriodPre2022, r.LoanPeriod)
			},
		},
		{
			name: "insurance",
			spec: "set_insurance:life=80000",
			check: func(t *testing.T, r domain.TaxInputs) {
				assert.True(t, r.LifeInsurancePremium.Equal(decimal.NewFromInt(80000)))
				assert.True(t, r.EarthquakeInsurancePremium.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)

			result, err := ApplyTransforms(base, []InputTransform{transform})
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		name    string
		spec    string
		wantErr string
	}{
		{"missing colon", "set_salary", "expected 'name:params'"},
		{"bad pair", "set_salary:amount", "expected 'key=value'"},
		{"missing param", "set_donation:", "requires 'amount' parameter"},
		{"bad number", "set_ideco:monthly=lots", "invalid monthly value"},
		{"bad bool", "set_spouse:enabled=maybe", "invalid enabled value"},
		{"bad int", "set_dependents:general=1.5", "invalid general value"},
		{"bad period", "set_loan:balance=1,period=1999", "1999"},
		{"unknown", "retire_early:years=2", "unknown transform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTransformRegistry_ParseTransformSpecs(t *testing.T) {
	registry := NewTransformRegistry()

	transforms, err := registry.ParseTransformSpecs([]string{"set_ideco:monthly=12000", "set_donation:amount=40000"})
	require.NoError(t, err)
	require.Len(t, transforms, 2)
	assert.Equal(t, "set_ideco", transforms[0].Name())
	assert.Equal(t, "set_donation", transforms[1].Name())

	_, err = registry.ParseTransformSpecs([]string{"set_ideco:monthly=12000", "nope"})
	assert.Error(t, err, "Should stop at the first bad spec")
}

func TestTransforms_Describe(t *testing.T) {
	transforms := []InputTransform{
		&SetGrossIncome{Amount: decimal.NewFromInt(1)},
		&AdjustGrossIncome{Percent: decimal.NewFromInt(5)},
		&SetPensionContribution{Monthly: decimal.NewFromInt(1)},
		&SetDonation{Amount: decimal.NewFromInt(1)},
		&SetSpouse{},
		&SetDependents{},
		&AdjustDependents{},
		&SetLoanBalance{},
		&SetMedicalExpenses{},
		&SetInsurancePremiums{},
	}

	for _, tr := range transforms {
		assert.NotEmpty(t, tr.Name(), "Should have a name")
		assert.NotEmpty(t, tr.Description(), "%s should describe itself", tr.Name())
	}
}

func TestTransforms_RejectNegativeAmounts(t *testing.T) {
	base := domain.NewTaxInputs(decimal.NewFromInt(5000000))
	negative := decimal.NewFromInt(-1)

	transforms := []InputTransform{
		&SetGrossIncome{Amount: negative},
		&SetPensionContribution{Monthly: negative},
		&SetDonation{Amount: negative},
		&SetDependents{General: -1},
		&SetLoanBalance{Balance: negative},
		&SetMedicalExpenses{Amount: negative},
		&SetInsurancePremiums{Earthquake: negative},
	}

	for _, tr := range transforms {
		assert.Error(t, tr.Validate(base), "%s should reject negative input", tr.Name())
	}
}
