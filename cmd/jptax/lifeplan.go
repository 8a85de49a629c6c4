package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/jptax/internal/compare"
	"github.com/rgehrsitz/jptax/internal/config"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newChildGrowthCmd(a *app) *cobra.Command {
	var age int

	cmd := &cobra.Command{
		Use:   "child-growth [input-file]",
		Short: "Project total tax as a child grows through the dependent bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := a.load(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("age") {
				if cfg.LifePlan == nil || cfg.LifePlan.ChildAge == nil {
					return fmt.Errorf("child age is required (set life_plan.child_age or --age)")
				}
				age = *cfg.LifePlan.ChildAge
			}
			if age < 0 || age > config.MaxChildAge {
				return fmt.Errorf("--age must be between 0 and %d, got %d", config.MaxChildAge, age)
			}

			report := &domain.Report{
				TaxYear:     p.Engine.Rules.Metadata.TaxYear,
				ChildAge:    &age,
				ChildGrowth: p.Engine.ChildGrowthSimulation(cfg.Household.ToTaxInputs(), age),
			}

			switch format := strings.ToLower(a.format(cmd)); format {
			case "csv", "child-growth-csv":
				return output.GenerateReport(cmd.OutOrStdout(), report, "child-growth-csv")
			case "json":
				return writeJSON(cmd, report.ChildGrowth)
			default:
				fmt.Fprint(cmd.OutOrStdout(), output.ChildGrowthTable(report))
				return nil
			}
		},
	}

	cmd.Flags().IntVar(&age, "age", 0, "Current child age, overriding life_plan.child_age")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func newLoanVsNisaCmd(a *app) *cobra.Command {
	var (
		monthly  string
		loanRate string
		nisaRate string
		years    int
	)

	cmd := &cobra.Command{
		Use:   "loan-vs-nisa [input-file]",
		Short: "Compare prepaying the housing loan with investing in NISA",
		Long: `Compare prepaying the housing loan with investing the same monthly surplus.
Values come from the life_plan section of the input file; flags override them,
and without an input file only the flags and defaults are used.

Examples:
  jptax loan-vs-nisa household.yaml
  jptax loan-vs-nisa --monthly 50000 --loan-rate 0.7 --nisa-rate 4 --years 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				plan        domain.LifePlan
				loanBalance decimal.Decimal
			)
			if len(args) == 1 {
				cfg, _, err := a.load(args[0])
				if err != nil {
					return err
				}
				if cfg.LifePlan != nil {
					plan = *cfg.LifePlan
				}
				loanBalance = cfg.Household.LoanBalanceYearEnd
			}

			flags := cmd.Flags()
			if flags.Changed("monthly") {
				d, err := parseNonNegative("monthly", monthly)
				if err != nil {
					return err
				}
				plan.MonthlySurplus = d
			}
			for _, o := range []struct {
				flag  string
				value string
				dst   **decimal.Decimal
			}{
				{"loan-rate", loanRate, &plan.LoanRatePercent},
				{"nisa-rate", nisaRate, &plan.NisaRatePercent},
			} {
				if !flags.Changed(o.flag) {
					continue
				}
				d, err := parseNonNegative(o.flag, o.value)
				if err != nil {
					return err
				}
				*o.dst = &d
			}
			if flags.Changed("years") {
				if years < 0 {
					return fmt.Errorf("--years must be non-negative, got %d", years)
				}
				plan.ComparisonYears = &years
			}

			terms := plan.WithDefaults()
			result := compare.CompareLoanVsNisa(loanBalance, terms.MonthlySurplus,
				terms.LoanRatePercent, terms.NisaRatePercent, terms.Years)

			if strings.ToLower(a.format(cmd)) == "json" {
				s, err := (&compare.JSONFormatter{Pretty: true}).FormatLoanVsNisa(result, terms.Years)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatLoanVsNisa(result, terms.Years))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly surplus to prepay or invest")
	cmd.Flags().StringVar(&loanRate, "loan-rate", "", "Annual loan interest rate in percent")
	cmd.Flags().StringVar(&nisaRate, "nisa-rate", "", "Annual investment return in percent")
	cmd.Flags().IntVar(&years, "years", 0, "Comparison horizon in years")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func newOtherTaxesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "other-taxes [input-file]",
		Short: "Estimate consumption, tobacco, gasoline, property, car and inheritance taxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := a.load(args[0])
			if err != nil {
				return err
			}
			if cfg.OtherTaxes == nil {
				return fmt.Errorf("%s has no other_taxes section", args[0])
			}

			result := p.Engine.CalculateOtherTaxes(*cfg.OtherTaxes)
			if strings.ToLower(a.format(cmd)) == "json" {
				return writeJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), output.OtherTaxesTable(&result))
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseNonNegative parses a non-negative decimal flag value.
func parseNonNegative(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must be a non-negative number, got %q", flag, value)
	}
	return d, nil
}
