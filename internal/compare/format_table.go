package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/pkg/yen"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing household variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("HOUSEHOLD TAX COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 24
	numWidth := 13

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Income Tax",
		numWidth, "Resident Tax",
		numWidth, "Take-Home",
		numWidth, "Furusato"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base row
	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	// Alternatives
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")

			sb.WriteString(fmt.Sprintf("  Take-Home:     %s (%s%%)\n",
				yen.FormatSigned(alt.NetIncomeDiffFromBase),
				alt.NetIncomePctFromBase.StringFixed(2)))

			if !alt.TotalTaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Income Tax:    %s\n", yen.FormatSigned(alt.IncomeTaxDiffFromBase)))
				sb.WriteString(fmt.Sprintf("  Resident Tax:  %s\n", yen.FormatSigned(alt.ResidentTaxDiffFromBase)))
			}

			if !alt.FurusatoLimitDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Furusato Limit: %s\n", yen.FormatSigned(alt.FurusatoLimitDiff)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, yen.Format(result.IncomeTax),
		numWidth, yen.Format(result.ResidentTax),
		numWidth, yen.Format(result.NetIncome),
		numWidth, yen.Format(result.FurusatoLimit))
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		incomeChange := "="
		if !alt.NetIncomeDiffFromBase.IsZero() {
			incomeChange = yen.FormatSigned(alt.NetIncomeDiffFromBase)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, incomeChange))
	}

	return sb.String()
}

// FormatLoanVsNisa renders the prepayment vs. investment comparison
func (tf *TableFormatter) FormatLoanVsNisa(result domain.LoanVsNisaResult, years int) string {
	var sb strings.Builder

	sb.WriteString("LOAN PREPAYMENT VS NISA\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon:              %d years\n", years))
	sb.WriteString(fmt.Sprintf("Total Contributed:    %s\n", yen.Format(result.TotalPrincipal)))
	sb.WriteString(fmt.Sprintf("Loan Interest Saved:  %s\n", yen.Format(result.LoanSavings)))
	sb.WriteString(fmt.Sprintf("NISA Gains:           %s\n", yen.Format(result.NisaGains)))
	sb.WriteString(fmt.Sprintf("Difference (NISA-Loan): %s\n", yen.FormatSigned(result.Difference)))
	sb.WriteString("\n")

	switch result.Recommendation {
	case domain.RecommendNISA:
		sb.WriteString("→ Investing comes out ahead of prepaying the loan\n")
	case domain.RecommendLoan:
		sb.WriteString("→ Prepaying the loan comes out ahead of investing\n")
	default:
		sb.WriteString("→ Both options end up equal\n")
	}

	return sb.String()
}

// percentOf returns part as a percentage of whole, or zero for a zero whole
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
