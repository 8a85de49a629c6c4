package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/rgehrsitz/jptax/internal/tui/tuistyles"
	"github.com/rgehrsitz/jptax/pkg/yen"
)

// ScenarioCard displays a compact what-if outcome
type ScenarioCard struct {
	Name        string
	Description string
	Highlights  []string
	IsBest      bool
	Width       int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{
		Name:       name,
		Highlights: []string{},
		Width:      40,
	}
}

// ScenarioCardFromOutcome builds a card with the outcome's key figures
func ScenarioCardFromOutcome(o domain.ScenarioOutcome) *ScenarioCard {
	return NewScenarioCard(o.Name).
		WithDescription(o.Description).
		AddHighlight("Take-home " + yen.FormatSigned(o.NetIncomeDiff)).
		AddHighlight("Taxes " + yen.FormatSigned(o.TotalTaxDiff)).
		AddHighlight("Furusato limit " + yen.Format(o.FurusatoLimit))
}

// WithDescription adds a description
func (s *ScenarioCard) WithDescription(desc string) *ScenarioCard {
	s.Description = desc
	return s
}

// AddHighlight adds a key metric
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetBest marks the card as the best take-home outcome
func (s *ScenarioCard) SetBest(best bool) *ScenarioCard {
	s.IsBest = best
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	title := s.Name
	if s.IsBest {
		title += " ★"
	}
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n")

	if s.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(s.Description))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		for _, h := range s.Highlights {
			content.WriteString("• " + h + "\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsBest {
		border = tuistyles.ColorSuccess
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// ScenarioList renders outcomes as cards side by side, starring the best take-home
func ScenarioList(outcomes []domain.ScenarioOutcome) string {
	if len(outcomes) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios to compare")
	}

	best := -1
	for i, o := range outcomes {
		if o.NetIncomeDiff.IsPositive() && (best < 0 || o.NetIncomeDiff.GreaterThan(outcomes[best].NetIncomeDiff)) {
			best = i
		}
	}

	rendered := make([]string, len(outcomes))
	for i, o := range outcomes {
		rendered[i] = ScenarioCardFromOutcome(o).SetBest(i == best).Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
