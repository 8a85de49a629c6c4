package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/jptax/internal/domain"
)

// CSVSummarizer writes one row for the household and one per what-if scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "GrossIncome", "IncomeTax", "ResidentTax", "TotalTax", "NetIncome", "FurusatoLimit", "NetIncomeDiff"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := func(name string, r domain.TaxResult, limit, diff string) []string {
		return []string{
			name,
			r.GrossIncome.StringFixed(0),
			r.IncomeTax.StringFixed(0),
			r.ResidentTax.StringFixed(0),
			r.TotalTax().StringFixed(0),
			r.NetIncome.StringFixed(0),
			limit,
			diff,
		}
	}

	if err := w.Write(row("base", report.Taxes, report.FurusatoLimit.StringFixed(0), "0")); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios {
		if err := w.Write(row(s.Name, s.Result, s.FurusatoLimit.StringFixed(0), s.NetIncomeDiff.StringFixed(0))); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ChildGrowthCSV writes the child growth projection, one row per year.
type ChildGrowthCSV struct{}

func (c ChildGrowthCSV) Name() string { return "child-growth-csv" }

func (c ChildGrowthCSV) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Age", "YearOffset", "TotalTax", "TaxReduction", "HighSchool", "College"}); err != nil {
		return nil, err
	}
	for _, p := range report.ChildGrowth {
		record := []string{
			strconv.Itoa(p.Age),
			strconv.Itoa(p.YearOffset),
			p.TotalTax.StringFixed(0),
			p.TaxReduction.StringFixed(0),
			strconv.FormatBool(p.IsHighSchool),
			strconv.FormatBool(p.IsCollege),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
