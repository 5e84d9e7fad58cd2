package ui

import "github.com/Mgrdich/TermTacToe/internal/arena"

// RoundMsg reports one finished arena round.
type RoundMsg arena.RoundResult

// DoneMsg carries the final statistics once the series is over.
type DoneMsg struct {
	Stats *arena.Stats
}
