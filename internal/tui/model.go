package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jptax/internal/calculation"
	"github.com/rgehrsitz/jptax/internal/compare"
	"github.com/rgehrsitz/jptax/internal/config"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/planner"
	"github.com/rgehrsitz/jptax/internal/tui/components"
	"github.com/rgehrsitz/jptax/pkg/yen"
)

// Slider keys
const (
	sliderSalary   = "gross_income"
	sliderIDeCo    = "ideco_monthly"
	sliderFurusato = "furusato_yearly"
	sliderMedical  = "medical_expenses"
)

// compareTemplates are the built-in what-ifs shown alongside the configured scenarios
var compareTemplates = []string{"ideco_23k", "donate_50k", "max_savings", "raise_10pct"}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	planner    *planner.Planner
	logger     calculation.Logger

	// Inputs
	sliders []*components.ParameterSlider
	focus   int

	// Results; baseline is the estimate for the file as loaded
	baseline   *domain.Report
	report     *domain.Report
	comparison *compare.ComparisonSet

	// seq numbers recalculations so stale results can be dropped
	seq int

	keys keyMap
	help help.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(configPath string, logger calculation.Logger) Model {
	return Model{
		currentScene:   SceneDashboard,
		configPath:     configPath,
		logger:         logger,
		keys:           defaultKeyMap(),
		help:           help.New(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading configuration...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath, m.logger)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string, logger calculation.Logger) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		p, err := planner.ForConfiguration(cfg, logger)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return ConfigLoadedMsg{Config: cfg, Planner: p}
	}
}

// runReportCmd returns a command that estimates the configuration
func runReportCmd(seq int, p *planner.Planner, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		report, err := p.Run(context.Background(), cfg)
		return ReportReadyMsg{Seq: seq, Report: report, Err: err}
	}
}

// compareCmd returns a command that compares the built-in what-ifs and the
// configured scenarios against the configuration
func compareCmd(p *planner.Planner, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		set, err := p.Compare.Compare(context.Background(), cfg, compare.CompareOptions{
			Templates:    compareTemplates,
			AllScenarios: true,
		})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// newSliders builds the adjustable inputs from the household
func newSliders(h domain.Household) []*components.ParameterSlider {
	d := decimal.NewFromInt
	return []*components.ParameterSlider{
		components.NewParameterSlider(sliderSalary, "Gross Salary",
			h.GrossIncome, decimal.Zero, d(30000000), d(100000)).
			WithFormat(yen.Man).
			WithDescription("Annual employment income before deductions"),
		components.NewParameterSlider(sliderIDeCo, "iDeCo (monthly)",
			h.IDeCoMonthly, decimal.Zero, d(68000), d(1000)).
			WithDescription("Deducted in full from income"),
		components.NewParameterSlider(sliderFurusato, "Furusato Donation",
			h.FurusatoYearly, decimal.Zero, d(1000000), d(10000)).
			WithDescription("Everything above ¥2,000 comes back as credits up to the limit"),
		components.NewParameterSlider(sliderMedical, "Medical Expenses",
			h.MedicalExpenses, decimal.Zero, d(2000000), d(10000)),
	}
}

// currentConfiguration returns a copy of the configuration with the slider values applied
func (m Model) currentConfiguration() *domain.Configuration {
	cfg := *m.config
	for _, s := range m.sliders {
		switch s.Key {
		case sliderSalary:
			cfg.Household.GrossIncome = s.Value
		case sliderIDeCo:
			cfg.Household.IDeCoMonthly = s.Value
		case sliderFurusato:
			cfg.Household.FurusatoYearly = s.Value
		case sliderMedical:
			cfg.Household.MedicalExpenses = s.Value
		}
	}
	return &cfg
}
