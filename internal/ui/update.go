package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mgrdich/TermTacToe/internal/arena"
	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/util"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case RoundMsg:
		res := arena.RoundResult(msg)
		m.played++
		m.lastRes = &res
		switch res.Winner {
		case game.P1:
			m.p1Wins++
		case game.P2:
			m.p2Wins++
		default:
			m.draws++
		}
		return m, waitForEvent(m.roundCh, m.doneCh)

	case DoneMsg:
		m.stats = msg.Stats
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		if m.stats == nil && m.stop != nil {
			m.stop()
		}
		return m, tea.Quit

	case "c":
		if m.stats == nil {
			m.statusMsg = "series still running"
			return m, nil
		}
		if err := util.CopyToClipboard(m.stats.Summary()); err != nil {
			m.statusMsg = "clipboard unavailable"
		} else {
			m.statusMsg = "summary copied to clipboard"
		}
		return m, nil
	}
	return m, nil
}
