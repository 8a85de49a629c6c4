package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/jptax/internal/compare"
	"github.com/rgehrsitz/jptax/internal/transform"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		with          string
		scenarios     string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the household against what-if templates and scenarios",
		Long: `Compare the household against built-in templates and the scenarios of the
input file. Without --with or --scenarios every configured scenario is compared.

Examples:
  jptax compare household.yaml --with ideco_23k,donate_50k
  jptax compare household.yaml --scenarios max_ideco --format csv
  jptax compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			cfg, p, err := a.load(args[0])
			if err != nil {
				return err
			}

			options := compare.CompareOptions{
				Templates: transform.ParseTemplateList(with),
				Scenarios: transform.ParseTemplateList(scenarios),
			}
			if len(options.Templates) == 0 && len(options.Scenarios) == 0 {
				if len(cfg.Scenarios) == 0 {
					return fmt.Errorf("nothing to compare: %s has no scenarios (use --with)", args[0])
				}
				options.AllScenarios = true
			}

			set, err := p.Compare.Compare(cmd.Context(), cfg, options)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			out := cmd.OutOrStdout()
			switch format := strings.ToLower(a.format(cmd)); format {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Comma-separated built-in templates to compare")
	cmd.Flags().StringVar(&scenarios, "scenarios", "", "Comma-separated scenario names from the input file")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func newTransformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List the transforms usable in scenario specs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available transforms (use as name:key=value,...):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in what-if templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		},
	}
}
