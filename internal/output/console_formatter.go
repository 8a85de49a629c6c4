package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/pkg/yen"
)

// ConsoleFormatter prints a short summary of the report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	taxes := report.Taxes

	fmt.Fprintf(&buf, "TAX SUMMARY (%d)\n", report.TaxYear)
	fmt.Fprintf(&buf, "Gross Income:   %s\n", yen.Format(taxes.GrossIncome))
	fmt.Fprintf(&buf, "Income Tax:     %s\n", yen.Format(taxes.IncomeTax))
	fmt.Fprintf(&buf, "Resident Tax:   %s\n", yen.Format(taxes.ResidentTax))
	fmt.Fprintf(&buf, "Take-Home Pay:  %s\n", yen.Format(taxes.NetIncome))
	fmt.Fprintf(&buf, "Furusato Limit: %s\n", yen.Format(report.FurusatoLimit))

	if report.LoanVsNisa != nil {
		fmt.Fprintf(&buf, "Loan vs NISA:   %s (%s)\n", report.LoanVsNisa.Recommendation, yen.FormatSigned(report.LoanVsNisa.Difference))
	}
	if report.OtherTaxes != nil {
		fmt.Fprintf(&buf, "Other Taxes:    %s\n", yen.Format(report.OtherTaxes.TotalOtherTax))
	}
	for _, s := range report.Scenarios {
		fmt.Fprintf(&buf, "%s: Δ %s take-home\n", s.Name, yen.FormatSigned(s.NetIncomeDiff))
	}
	return buf.Bytes(), nil
}
