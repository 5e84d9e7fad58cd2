// Package ui implements the Bubbletea arena watcher: live per-round
// results while a series runs and a styled summary when it finishes.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mgrdich/TermTacToe/internal/arena"
)

// Model is the Bubbletea application model for watching a series.
type Model struct {
	theme   Theme
	spinner spinner.Model

	// Series description.
	p1Name, p2Name string
	rounds         int

	// Live tally.
	played  int
	p1Wins  int
	p2Wins  int
	draws   int
	lastRes *arena.RoundResult

	// Final state.
	stats     *arena.Stats
	statusMsg string
	quitting  bool

	// Wiring to the match goroutine.
	roundCh <-chan arena.RoundResult
	doneCh  <-chan *arena.Stats
	stop    func()
}

// NewModel builds a watcher for a series of rounds between the named
// runners. roundCh must deliver every round and be closed before the
// final stats are sent on doneCh; stop is invoked when the user quits
// mid-series.
func NewModel(p1Name, p2Name string, rounds int, useColors bool,
	roundCh <-chan arena.RoundResult, doneCh <-chan *arena.Stats, stop func()) Model {
	theme := NewTheme(useColors)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if !theme.Disabled {
		sp.Style = theme.Accent
	}
	return Model{
		theme:   theme,
		spinner: sp,
		p1Name:  p1Name,
		p2Name:  p2Name,
		rounds:  rounds,
		roundCh: roundCh,
		doneCh:  doneCh,
		stop:    stop,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.roundCh, m.doneCh))
}

// waitForEvent blocks on the next round or, once the round channel is
// closed, the final statistics.
func waitForEvent(roundCh <-chan arena.RoundResult, doneCh <-chan *arena.Stats) tea.Cmd {
	return func() tea.Msg {
		if r, ok := <-roundCh; ok {
			return RoundMsg(r)
		}
		return DoneMsg{Stats: <-doneCh}
	}
}
