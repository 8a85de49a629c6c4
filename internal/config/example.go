package config

import (
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateExampleConfiguration returns a complete, valid configuration for a salaried
// household, used to seed new input files.
func CreateExampleConfiguration() *domain.Configuration {
	childAge := 10
	loanRate, nisaRate, years := domain.DefaultLoanRatePercent, domain.DefaultNisaRatePercent, domain.DefaultComparisonYears
	return &domain.Configuration{
		TaxYear: domain.DefaultRuleSet().Metadata.TaxYear,
		Household: domain.Household{
			GrossIncome:                decimal.NewFromInt(5000000),
			IDeCoMonthly:               decimal.NewFromInt(12000),
			FurusatoYearly:             decimal.NewFromInt(50000),
			GeneralDependents:          1,
			LifeInsurancePremium:       decimal.NewFromInt(60000),
			EarthquakeInsurancePremium: decimal.NewFromInt(20000),
			LoanBalanceYearEnd:         decimal.NewFromInt(25000000),
			LoanPeriod:                 domain.DefaultLoanPeriod,
			SocialInsuranceMode:        domain.SocialInsuranceAuto,
			MedicalExpenses:            decimal.NewFromInt(80000),
		},
		LifePlan: &domain.LifePlan{
			ChildAge:        &childAge,
			MonthlySurplus:  decimal.NewFromInt(50000),
			LoanRatePercent: &loanRate,
			NisaRatePercent: &nisaRate,
			ComparisonYears: &years,
		},
		OtherTaxes: &domain.OtherTaxInputs{
			MonthlyConsumptionSpending: decimal.NewFromInt(150000),
			MonthlyGasolineCost:        decimal.NewFromInt(8000),
			YearlyPropertyTax:          decimal.NewFromInt(120000),
			CarCategory:                domain.Car1500,
			InheritanceAssets:          decimal.NewFromInt(50000000),
			InheritanceHeirs:           2,
		},
		Scenarios: []domain.WhatIfScenario{
			{
				Name:        "max_ideco",
				Description: "iDeCo at the company employee cap",
				Transforms:  []string{"set_ideco:monthly=23000"},
			},
			{
				Name:        "bigger_donation",
				Description: "Donate 80,000 yen",
				Transforms:  []string{"set_donation:amount=80000"},
			},
		},
	}
}
