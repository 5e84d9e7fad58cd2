package ui

import (
	"fmt"
	"strings"
	"time"
)

// timeUnit is the rounding granularity for displayed durations.
const timeUnit = time.Millisecond

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("%s (X) vs %s (O)", m.p1Name, m.p2Name)))
	b.WriteByte('\n')

	if m.stats == nil {
		b.WriteString(fmt.Sprintf("%s round %d/%d\n\n", m.spinner.View(), m.played+1, m.rounds))
		b.WriteString(m.tally())
		if m.lastRes != nil {
			b.WriteString(m.theme.Help.Render(
				fmt.Sprintf("last round: %d moves in %v", m.lastRes.Moves, m.lastRes.Duration.Round(timeUnit))))
			b.WriteByte('\n')
		}
		b.WriteString(m.theme.Help.Render("q: abort"))
		b.WriteByte('\n')
		return b.String()
	}

	s := m.stats
	var box strings.Builder
	box.WriteString(m.tally())
	box.WriteString(fmt.Sprintf("moves:  %d\n", s.TotalMoves))
	box.WriteString(fmt.Sprintf("round:  mean %v, stddev %v\n",
		s.MeanRound.Round(timeUnit), s.StdDevRound.Round(timeUnit)))
	box.WriteString(fmt.Sprintf("%s: %d effort in %v\n",
		s.P1Name, s.P1Effort, s.P1Duration.Round(timeUnit)))
	box.WriteString(fmt.Sprintf("%s: %d effort in %v",
		s.P2Name, s.P2Effort, s.P2Duration.Round(timeUnit)))
	if s.IllegalRounds > 0 {
		box.WriteString(fmt.Sprintf("\nillegal rounds: %d", s.IllegalRounds))
	}

	b.WriteString(m.theme.Border.Render(box.String()))
	b.WriteByte('\n')
	if m.statusMsg != "" {
		b.WriteString(m.theme.Accent.Render(m.statusMsg))
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Help.Render("c: copy summary · q: quit"))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) tally() string {
	return fmt.Sprintf("%s\n%s\n%s\n",
		m.theme.Win.Render(fmt.Sprintf("%-12s %d", m.p1Name, m.p1Wins)),
		m.theme.Loss.Render(fmt.Sprintf("%-12s %d", m.p2Name, m.p2Wins)),
		m.theme.Draw.Render(fmt.Sprintf("%-12s %d", "draws", m.draws)))
}
