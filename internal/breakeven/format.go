package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/jptax/pkg/yen"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	switch result.Target {
	case OptimizeSalary:
		sb.WriteString("REQUIRED SALARY\n")
	default:
		sb.WriteString("FURUSATO NOZEI DONATION LIMIT\n")
	}
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	switch result.Target {
	case OptimizeSalary:
		if result.Request.TargetNetIncome != nil {
			sb.WriteString(fmt.Sprintf("Target Take-Home:    %s\n", yen.Format(*result.Request.TargetNetIncome)))
		}
		sb.WriteString(fmt.Sprintf("Required Salary:     %s\n", yen.Format(result.OptimalValue)))
		sb.WriteString(fmt.Sprintf("Achieved Take-Home:  %s\n", yen.Format(result.Result.NetIncome)))
	default:
		sb.WriteString(fmt.Sprintf("Donation Limit:      %s\n", yen.Format(result.OptimalValue)))
		sb.WriteString(fmt.Sprintf("Tax Without Donation: %s\n", yen.Format(result.BaseTotalTax)))
		sb.WriteString(fmt.Sprintf("Tax At Limit:        %s\n", yen.Format(result.Result.TotalTax())))
		sb.WriteString(fmt.Sprintf("Tax Benefit:         %s\n", yen.Format(result.Benefit)))
		sb.WriteString(fmt.Sprintf("Donation Cost:       %s\n", yen.Format(result.Cost)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatSweep formats donation limits across salaries
func (tf *TableFormatter) FormatSweep(result *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("DONATION LIMIT BY SALARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %16s %16s\n", "Salary", "Limit", "Total Tax"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, p := range result.Points {
		sb.WriteString(fmt.Sprintf("%-16s %16s %16s\n",
			yen.Format(p.GrossIncome),
			yen.Format(p.Optimum.OptimalValue),
			yen.Format(p.Optimum.BaseTotalTax)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("NOTES\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatSweep formats a salary sweep as JSON
func (jf *JSONFormatter) FormatSweep(result *SweepResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}
