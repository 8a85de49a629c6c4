package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/jptax/internal/tui/components"
	"github.com/rgehrsitz/jptax/pkg/yen"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.config == nil {
		if m.err != nil {
			return AppStyle.Render(ErrorStyle.Render("Error: " + m.err.Error()) + "\n\nPress q to quit")
		}
		return AppStyle.Render(InfoStyle.Render(m.loadingMessage))
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.renderDashboard()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), "", content}
	if m.err != nil {
		parts = append(parts, "", ErrorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, "", m.renderStatusBar())
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderTitleBar() string {
	title := "Japanese Tax Estimator"
	if m.report != nil {
		title = fmt.Sprintf("%s %d", title, m.report.TaxYear)
	}
	breadcrumb := fmt.Sprintf("%s / %s", filepath.Base(m.configPath), m.currentScene)

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(title),
		SubtitleStyle.Render(breadcrumb),
	)
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)
	if m.loading {
		status = InfoStyle.Render(m.loadingMessage) + "  " + status
	}
	return StatusBarStyle.Render(status)
}

func (m Model) renderDashboard() string {
	inputs := make([]string, len(m.sliders))
	for i, s := range m.sliders {
		inputs[i] = s.Render()
	}
	left := lipgloss.NewStyle().Width(44).Render(strings.Join(inputs, "\n\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderMetrics())
}

// renderMetrics shows the current estimate with changes against the file as loaded
func (m Model) renderMetrics() string {
	if m.report == nil || m.baseline == nil {
		return InfoStyle.Render("Calculating...")
	}
	r, b := m.report, m.baseline

	cards := []*components.MetricCard{
		components.NewYenCard("Take-Home Pay", r.Taxes.NetIncome, b.Taxes.NetIncome, true),
		components.NewYenCard("Total Tax", r.Taxes.TotalTax(), b.Taxes.TotalTax(), false),
		components.NewYenCard("Income Tax", r.Taxes.IncomeTax, b.Taxes.IncomeTax, false),
		components.NewYenCard("Resident Tax", r.Taxes.ResidentTax, b.Taxes.ResidentTax, false),
		components.NewYenCard("Furusato Limit", r.FurusatoLimit, b.FurusatoLimit, true),
	}
	if !r.Taxes.HousingLoanCredit.IsZero() {
		cards = append(cards, components.NewYenCard("Housing Loan Credit",
			r.Taxes.HousingLoanCredit, b.Taxes.HousingLoanCredit, true))
	}

	out := components.MetricGrid(cards, 2)

	if over := r.Inputs.DonationYearly.Sub(r.FurusatoLimit); over.IsPositive() {
		out += "\n" + WarnStyle.Render("Donation exceeds the furusato limit by "+yen.Format(over))
	}

	if len(r.Scenarios) > 0 {
		lines := []string{SelectedItemStyle.Render("Scenarios")}
		for _, s := range r.Scenarios {
			lines = append(lines, fmt.Sprintf("  %-20s %s", s.Name, yen.FormatSigned(s.NetIncomeDiff)))
		}
		out += "\n\n" + strings.Join(lines, "\n")
	}

	return out
}

func (m Model) renderCompare() string {
	if m.comparison == nil {
		return InfoStyle.Render("No comparison yet. Press c to compare.")
	}

	var b strings.Builder
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Against take-home of %s",
		yen.Format(m.comparison.BaseResult.NetIncome))))
	b.WriteString("\n\n")

	outcomes := m.comparison.ToScenarioOutcomes()
	perRow := max(1, m.width/42)
	for start := 0; start < len(outcomes); start += perRow {
		b.WriteString(components.ScenarioList(outcomes[start:min(start+perRow, len(outcomes))]))
		b.WriteString("\n")
	}

	if len(m.comparison.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(SelectedItemStyle.Render("Recommendations"))
		for _, rec := range m.comparison.Recommendations {
			b.WriteString("\n• " + rec)
		}
	}

	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(SelectedItemStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("Adjust the inputs on the dashboard; every change is recalculated.\n" +
		"Changes are shown against the configuration file as loaded."))
	return b.String()
}
