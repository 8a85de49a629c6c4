package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport() *domain.Report {
	age := 17
	inputs := domain.NewTaxInputs(decimal.NewFromInt(5000000))
	inputs.DonationYearly = decimal.NewFromInt(300000)

	return &domain.Report{
		TaxYear: 2025,
		Inputs:  inputs,
		Taxes: domain.TaxResult{
			GrossIncome:     decimal.NewFromInt(5000000),
			SocialInsurance: decimal.NewFromInt(750000),
			IncomeTax:       decimal.NewFromInt(117925),
			ResidentTax:     decimal.NewFromInt(240500),
			NetIncome:       decimal.NewFromInt(3891575),
		},
		FurusatoLimit: decimal.NewFromInt(264000),
		ChildAge:      &age,
		ChildGrowth: []domain.ChildGrowthPoint{
			{Age: 18, YearOffset: 1, TotalTax: decimal.NewFromInt(300000), TaxReduction: decimal.NewFromInt(58425), IsHighSchool: true},
			{Age: 19, YearOffset: 2, TotalTax: decimal.NewFromInt(280000), TaxReduction: decimal.NewFromInt(78425), IsCollege: true},
		},
		LoanVsNisa: &domain.LoanVsNisaResult{
			LoanSavings:    decimal.NewFromInt(213110),
			NisaGains:      decimal.NewFromInt(1362490),
			Difference:     decimal.NewFromInt(1149379),
			Recommendation: domain.RecommendNISA,
			TotalPrincipal: decimal.NewFromInt(6000000),
		},
		ComparisonYears: 10,
		OtherTaxes: &domain.OtherTaxResult{
			ConsumptionTax: decimal.NewFromInt(108000),
			CarTax:         decimal.NewFromInt(30500),
			TotalOtherTax:  decimal.NewFromInt(138500),
		},
		Scenarios: []domain.ScenarioOutcome{
			{
				Name:          "max_ideco",
				Description:   "Raise iDeCo to the cap",
				Result:        domain.TaxResult{IncomeTax: decimal.NewFromInt(94646), ResidentTax: decimal.NewFromInt(212900), NetIncome: decimal.NewFromInt(3942454)},
				NetIncomeDiff: decimal.NewFromInt(50879),
				TotalTaxDiff:  decimal.NewFromInt(-50879),
				FurusatoLimit: decimal.NewFromInt(200000),
			},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.Report
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport()
	out, err := formatter.Format(report)

	assert.NoError(t, err, "Should not error")
	assert.Same(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "jptax_report_"), "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filepath.Join(tmpDir, filename))
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *domain.Report) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Equal(t, "console-lite", ConsoleFormatter{}.Name())
	assert.Contains(t, content, "TAX SUMMARY (2025)")
	assert.Contains(t, content, "Take-Home Pay:  ¥3,891,575")
	assert.Contains(t, content, "Furusato Limit: ¥264,000")
	assert.Contains(t, content, "Loan vs NISA:   NISA (+¥1,149,379)")
	assert.Contains(t, content, "max_ideco: Δ +¥50,879 take-home")
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Equal(t, "console", ConsoleVerboseFormatter{}.Name())
	for _, want := range []string{
		"INCOME AND RESIDENT TAX ESTIMATE (TAX YEAR 2025)",
		"KEY ASSUMPTIONS:",
		"Social insurance (auto): 15% of salary",
		"Income Tax:",
		"¥117,925",
		"Over the limit by ¥36,000",
		"CHILD GROWTH PROJECTION (current age 17)",
		"high school",
		"college",
		"LOAN PREPAYMENT VS NISA",
		"OTHER HOUSEHOLD TAXES",
		"¥138,500",
		"WHAT-IF SCENARIOS",
		"max_ideco (Raise iDeCo to the cap)",
	} {
		assert.Contains(t, content, want)
	}
	assert.NotContains(t, content, "CREDITS", "No credits to show")
}

func TestConsoleVerboseFormatter_MinimalReport(t *testing.T) {
	report := &domain.Report{TaxYear: 2024, Assumptions: []string{"Custom rules"}}

	out, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "• Custom rules")
	assert.NotContains(t, content, "CHILD GROWTH")
	assert.NotContains(t, content, "WHAT-IF SCENARIOS")
}

func TestCSVSummarizer_Format(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"base", "5000000", "117925", "240500", "358425", "3891575", "264000", "0"}, records[1])
	assert.Equal(t, "max_ideco", records[2][0])
	assert.Equal(t, "50879", records[2][7])
}

func TestChildGrowthCSV_Format(t *testing.T) {
	out, err := ChildGrowthCSV{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"18", "1", "300000", "58425", "true", "false"}, records[1])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 2025, decoded.TaxYear)
	assert.True(t, decoded.FurusatoLimit.Equal(decimal.NewFromInt(264000)))
	require.NotNil(t, decoded.LoanVsNisa)
	assert.Equal(t, domain.RecommendNISA, decoded.LoanVsNisa.Recommendation)
	assert.Contains(t, string(out), "\"child_growth\"")
}

func TestYAMLFormatter_Format(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 2025, decoded["tax_year"])
	assert.Contains(t, decoded, "scenarios")
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Tax Estimate 2025</title>")
	assert.Contains(t, content, "¥3,891,575")
	assert.Contains(t, content, "Loan Prepayment vs NISA")
	assert.Contains(t, content, "max_ideco")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t,
		[]string{"child-growth-csv", "console", "console-lite", "csv", "html", "json", "yaml"},
		AvailableFormatterNames())
}

func TestAvailableFormatAliases(t *testing.T) {
	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "verbose")
	assert.Contains(t, aliases, "console-verbose")
	assert.Contains(t, aliases, "yml")
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console-lite", GetFormatterByName("console-lite").Name())
	assert.Equal(t, "console", GetFormatterByName("Verbose").Name(), "aliases resolve case-insensitively")
	assert.Equal(t, "yaml", GetFormatterByName("yml").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(&buf, buildTestReport(), "console-lite"))
	assert.Contains(t, buf.String(), "TAX SUMMARY")

	err := GenerateReport(&buf, buildTestReport(), "pdf")
	assert.ErrorContains(t, err, "unsupported format: pdf")
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "household.yaml")
	config := &domain.Configuration{
		TaxYear:   2025,
		Household: domain.Household{GrossIncome: decimal.NewFromInt(5000000)},
	}

	require.NoError(t, SaveConfiguration(config, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gross_income")
	assert.Contains(t, string(data), "5000000")
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "1.25%", FormatPercentage(decimal.RequireFromString("1.254")))
	assert.Equal(t, "¥1,000", FormatCurrency(decimal.NewFromInt(1000)))
}
