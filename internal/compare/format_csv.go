package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Income Tax",
		"Resident Tax",
		"Total Tax",
		"Take-Home",
		"Furusato Limit",
		"Take-Home Diff from Base",
		"Take-Home % Change",
		"Tax Diff from Base",
		"Tax % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, compSet.BaseResult, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result, base *ComparisonResult, scenarioType string) []string {
	taxPct := "0.00"
	if base != nil {
		taxPct = percentOf(result.TotalTaxDiffFromBase, base.TotalTax).StringFixed(2)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.IncomeTax.StringFixed(0),
		result.ResidentTax.StringFixed(0),
		result.TotalTax.StringFixed(0),
		result.NetIncome.StringFixed(0),
		result.FurusatoLimit.StringFixed(0),
		result.NetIncomeDiffFromBase.StringFixed(0),
		result.NetIncomePctFromBase.StringFixed(2),
		result.TotalTaxDiffFromBase.StringFixed(0),
		taxPct,
	}
}
