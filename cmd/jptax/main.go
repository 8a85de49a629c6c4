package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rgehrsitz/jptax/internal/config"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/planner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = logrus.WithField("module", "jptax")

// app carries the resolved settings shared by every command
type app struct {
	settings config.Settings

	// flag values; they only apply when set on the command line
	taxYear   int
	rulesFile string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "jptax",
		Short: "Japanese income and resident tax estimator",
		Long: `Estimate income tax, resident tax, take-home pay and the furusato nozei
donation limit for a salaried household, and explore what-if changes.

Defaults can be set with JPTAX_TAX_YEAR, JPTAX_RULES_FILE, JPTAX_FORMAT and
JPTAX_LOG_LEVEL; flags override them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.IntVar(&a.taxYear, "tax-year", 0, fmt.Sprintf("Built-in rule set to use %v", domain.SupportedTaxYears()))
	flags.StringVar(&a.rulesFile, "rules", "", "YAML or TOML rules file overriding the tax year")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newCalculateCmd(a),
		newValidateCmd(a),
		newFurusatoCmd(a),
		newChildGrowthCmd(a),
		newLoanVsNisaCmd(a),
		newOtherTaxesCmd(a),
		newCompareCmd(a),
		newTransformsCmd(),
		newTemplatesCmd(),
		newInitCmd(),
		versionCmd(),
	)

	return root
}

// setup reads the environment, applies flag overrides and configures logging
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tax-year") {
		s.TaxYear = a.taxYear
	}
	if flags.Changed("rules") {
		s.RulesFile = a.rulesFile
	}
	if flags.Changed("log-level") {
		s.LogLevel = a.logLevel
	}

	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a.settings = s
	return nil
}

// load parses an input file and builds a planner for its rule set
func (a *app) load(path string) (*domain.Configuration, *planner.Planner, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	if a.settings.TaxYear != 0 {
		cfg.TaxYear = a.settings.TaxYear
	}
	if a.settings.RulesFile != "" {
		cfg.RulesFile = a.settings.RulesFile
	}

	p, err := planner.ForConfiguration(cfg, logrus.WithField("module", "calculation"))
	if err != nil {
		return nil, nil, err
	}
	p.Engine.Debug = logrus.IsLevelEnabled(logrus.DebugLevel)

	log.Debugf("loaded %s with rules for tax year %d", path, p.Engine.Rules.Metadata.TaxYear)
	return cfg, p, nil
}

// format returns the flag value when given, otherwise the environment default
func (a *app) format(cmd *cobra.Command) string {
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		return f
	}
	return a.settings.Format
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jptax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
