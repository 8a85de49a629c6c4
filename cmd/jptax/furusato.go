package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/jptax/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newFurusatoCmd(a *app) *cobra.Command {
	var (
		sweep     string
		targetNet string
	)

	cmd := &cobra.Command{
		Use:   "furusato [input-file]",
		Short: "Find the furusato nozei donation limit",
		Long: `Find the largest furusato nozei donation whose tax credits still cover
everything above the 2,000 yen self burden.

Examples:
  jptax furusato household.yaml
  jptax furusato household.yaml --sweep 4000000,5000000,6000000
  jptax furusato household.yaml --target-net 4000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := a.load(args[0])
			if err != nil {
				return err
			}
			inputs := cfg.Household.ToTaxInputs()
			format := strings.ToLower(a.format(cmd))
			out := cmd.OutOrStdout()

			if sweep != "" {
				salaries, err := parseAmounts(strings.Split(sweep, ","))
				if err != nil {
					return fmt.Errorf("--sweep: %w", err)
				}
				result, err := p.Solver.SweepDonationLimits(cmd.Context(), inputs, salaries)
				if err != nil {
					return err
				}
				if format == "json" {
					s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatSweep(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatSweep(result))
				return nil
			}

			req := breakeven.OptimizationRequest{Base: inputs, Target: breakeven.OptimizeDonation}
			if targetNet != "" {
				target, err := decimal.NewFromString(targetNet)
				if err != nil {
					return fmt.Errorf("--target-net: %w", err)
				}
				req.Target = breakeven.OptimizeSalary
				req.TargetNetIncome = &target
			}

			result, err := p.Solver.Optimize(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format == "json" {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVar(&sweep, "sweep", "", "Comma-separated gross salaries to compute limits for")
	cmd.Flags().StringVar(&targetNet, "target-net", "", "Find the salary reaching this take-home pay instead")
	return cmd
}

// parseAmounts converts yen strings into decimals
func parseAmounts(values []string) ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), "_", ""))
		if err != nil || d.IsNegative() {
			return nil, fmt.Errorf("invalid amount %q", v)
		}
		amounts = append(amounts, d)
	}
	return amounts, nil
}
