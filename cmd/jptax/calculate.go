package main

import (
	"fmt"

	"github.com/rgehrsitz/jptax/internal/output"
	"github.com/spf13/cobra"
)

// extensions maps formatter names onto file extensions for --save
var extensions = map[string]string{
	"console":          "txt",
	"console-lite":     "txt",
	"csv":              "csv",
	"child-growth-csv": "csv",
	"json":             "json",
	"yaml":             "yaml",
	"html":             "html",
}

func newCalculateCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Estimate taxes, the donation limit and the life plan for a household",
		Long: `Estimate taxes for the household in the input file together with the
furusato limit, the child growth projection, the loan vs NISA comparison,
other household taxes and every configured what-if scenario.

Examples:
  jptax calculate household.yaml
  jptax calculate household.yaml --format json
  jptax calculate household.yaml --format html --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := a.load(args[0])
			if err != nil {
				return err
			}

			report, err := p.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			format := a.format(cmd)
			if !save {
				return output.GenerateReport(cmd.OutOrStdout(), report, format)
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format: %s (available: %v)", format, output.AvailableFormatterNames())
			}
			filename, err := output.WriteFormatted(f, report, extensions[f.Name()])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", fmt.Sprintf("Output format %v", output.AvailableFormatterNames()))
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file and its rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (tax year %d)\n",
				args[0], p.Engine.Rules.Metadata.TaxYear)
			return nil
		},
	}
}
