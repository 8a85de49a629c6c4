package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.planner = msg.Planner
		m.sliders = newSliders(msg.Config.Household)
		m.focus = 0
		m.sliders[0].SetFocused(true)
		return m.recalculate()

	case ReportReadyMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.report = msg.Report
		if m.baseline == nil {
			m.baseline = msg.Report
		}
		return m, nil

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.comparison = msg.Set
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			m.navigate(m.previousScene)
		} else {
			m.navigate(SceneHelp)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneDashboard {
			m.navigate(SceneDashboard)
		}
		return m, nil
	}

	// Everything else needs a loaded configuration
	if m.config == nil || m.planner == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Compare):
		m.navigate(SceneCompare)
		m.loading = true
		m.loadingMessage = "Comparing what-ifs..."
		return m, compareCmd(m.planner, m.currentConfiguration())
	}

	if m.currentScene != SceneDashboard {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		m.sliders[m.focus].Decrement()
		return m.recalculate()
	case key.Matches(msg, m.keys.Right):
		m.sliders[m.focus].Increment()
		return m.recalculate()
	case key.Matches(msg, m.keys.Reset):
		m.sliders = newSliders(m.config.Household)
		m.focus = 0
		m.sliders[0].SetFocused(true)
		return m.recalculate()
	}

	return m, nil
}

func (m *Model) navigate(scene Scene) {
	if scene == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	m.help.ShowAll = scene == SceneHelp
}

func (m *Model) moveFocus(delta int) {
	if len(m.sliders) == 0 {
		return
	}
	m.sliders[m.focus].SetFocused(false)
	m.focus = (m.focus + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focus].SetFocused(true)
}

// recalculate starts an estimate for the current slider values
func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.loadingMessage = "Calculating..."
	return m, runReportCmd(m.seq, m.planner, m.currentConfiguration())
}
