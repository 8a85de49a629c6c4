package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/jptax/internal/compare"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/pkg/yen"
	"github.com/shopspring/decimal"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8800"))
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	taxes := report.Taxes

	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintln(&buf, headingStyle.Render(fmt.Sprintf("INCOME AND RESIDENT TAX ESTIMATE (TAX YEAR %d)", report.TaxYear)))
	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsOf(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	section(&buf, "INCOME")
	line(&buf, "Gross Income", taxes.GrossIncome)
	line(&buf, "Employment Deduction", taxes.EmploymentDeduction)
	line(&buf, "Social Insurance", taxes.SocialInsurance)
	fmt.Fprintln(&buf)

	section(&buf, "DEDUCTIONS")
	line(&buf, "Basic (income tax)", taxes.BasicDeductionIncome)
	line(&buf, "Basic (resident tax)", taxes.BasicDeductionResident)
	if !taxes.MedicalDeduction.IsZero() {
		line(&buf, "Medical", taxes.MedicalDeduction)
	}
	line(&buf, "Total (income tax)", taxes.TotalIncomeDeductions)
	fmt.Fprintln(&buf)

	section(&buf, "TAXES")
	line(&buf, "Taxable Income", taxes.TaxableIncome)
	line(&buf, "Taxable (resident)", taxes.TaxableResidentIncome)
	line(&buf, "Income Tax", taxes.IncomeTax)
	line(&buf, "Resident Tax", taxes.ResidentTax)
	line(&buf, "Total Tax", taxes.TotalTax())
	line(&buf, "Take-Home Pay", taxes.NetIncome)
	line(&buf, "Monthly Take-Home", taxes.NetIncome.Div(decimal.NewFromInt(12)))
	fmt.Fprintln(&buf)

	if !taxes.HousingLoanCredit.IsZero() || !taxes.HousingLoanCreditResident.IsZero() || !taxes.DonationCreditResident.IsZero() {
		section(&buf, "CREDITS")
		line(&buf, "Housing Loan (income)", taxes.HousingLoanCredit)
		line(&buf, "Housing Loan (resident)", taxes.HousingLoanCreditResident)
		line(&buf, "Donation (resident)", taxes.DonationCreditResident)
		fmt.Fprintln(&buf)
	}

	section(&buf, "FURUSATO NOZEI")
	line(&buf, "Donation Limit", report.FurusatoLimit)
	donation := report.Inputs.DonationYearly
	if donation.IsPositive() {
		line(&buf, "Current Donation", donation)
		if donation.GreaterThan(report.FurusatoLimit) {
			fmt.Fprintln(&buf, warnStyle.Render(fmt.Sprintf("  Over the limit by %s", yen.Format(donation.Sub(report.FurusatoLimit)))))
		}
	}
	fmt.Fprintln(&buf)

	if len(report.ChildGrowth) > 0 {
		writeChildGrowth(&buf, report)
	}
	if report.LoanVsNisa != nil {
		fmt.Fprint(&buf, (&compare.TableFormatter{}).FormatLoanVsNisa(*report.LoanVsNisa, report.ComparisonYears))
		fmt.Fprintln(&buf)
	}
	if report.OtherTaxes != nil {
		writeOtherTaxes(&buf, report.OtherTaxes)
	}
	if len(report.Scenarios) > 0 {
		writeScenarios(&buf, report.Scenarios)
	}

	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, headingStyle.Render(title))
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-24s %14s\n", label+":", yen.Format(amount))
}

func writeChildGrowth(buf *bytes.Buffer, report *domain.Report) {
	title := "CHILD GROWTH PROJECTION"
	if report.ChildAge != nil {
		title = fmt.Sprintf("CHILD GROWTH PROJECTION (current age %d)", *report.ChildAge)
	}
	section(buf, title)
	fmt.Fprintf(buf, "  %-5s %-6s %-12s %14s %14s\n", "Age", "Year", "Stage", "Total Tax", "Reduction")
	for _, p := range report.ChildGrowth {
		fmt.Fprintf(buf, "  %-5d +%-5d %-12s %14s %14s\n",
			p.Age, p.YearOffset, stage(p), yen.Format(p.TotalTax), yen.FormatSigned(p.TaxReduction))
	}
	fmt.Fprintln(buf)
}

func stage(p domain.ChildGrowthPoint) string {
	switch {
	case p.IsHighSchool:
		return "high school"
	case p.IsCollege:
		return "college"
	default:
		return "-"
	}
}

func writeOtherTaxes(buf *bytes.Buffer, o *domain.OtherTaxResult) {
	section(buf, "OTHER HOUSEHOLD TAXES (YEARLY)")
	line(buf, "Consumption", o.ConsumptionTax)
	line(buf, "Tobacco", o.TobaccoTax)
	line(buf, "Gasoline", o.GasolineTax)
	line(buf, "Property", o.PropertyTax)
	line(buf, "Automobile", o.CarTax)
	line(buf, "Inheritance (per year)", o.InheritanceTaxYearly)
	line(buf, "Total", o.TotalOtherTax)
	fmt.Fprintln(buf)
}

func writeScenarios(buf *bytes.Buffer, scenarios []domain.ScenarioOutcome) {
	section(buf, "WHAT-IF SCENARIOS")
	for _, s := range scenarios {
		fmt.Fprintf(buf, "  %s", s.Name)
		if s.Description != "" {
			fmt.Fprintf(buf, " (%s)", s.Description)
		}
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "    Take-Home: %s  Δ %s\n", yen.Format(s.Result.NetIncome), yen.FormatSigned(s.NetIncomeDiff))
		fmt.Fprintf(buf, "    Total Tax: %s  Δ %s\n", yen.Format(s.Result.TotalTax()), yen.FormatSigned(s.TotalTaxDiff))
		fmt.Fprintf(buf, "    Furusato Limit: %s\n", yen.Format(s.FurusatoLimit))
	}
	fmt.Fprintln(buf)
}

// ChildGrowthTable renders only the child growth projection of a report
func ChildGrowthTable(report *domain.Report) string {
	var buf bytes.Buffer
	writeChildGrowth(&buf, report)
	return buf.String()
}

// OtherTaxesTable renders only the auxiliary tax estimates
func OtherTaxesTable(o *domain.OtherTaxResult) string {
	var buf bytes.Buffer
	writeOtherTaxes(&buf, o)
	return buf.String()
}
