package metattt

import (
	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

// DefaultScoreWeight is the default weight of the meta board relative to
// the undecided inner boards.
const DefaultScoreWeight = 9.0

// WeightedEstimate returns an evaluator scoring weight times the simple
// estimate of the meta board plus the simple estimates of every undecided
// inner board. A won meta line dominates with +/-Inf. Inner boards that
// are terminal contribute only through their meta mark.
func WeightedEstimate(weight float64) game.Evaluator[Move] {
	return func(r game.Rule[Move], side game.Player) float64 {
		pos := r.(*Rule)
		value := weight * tictactoe.SimpleEstimate(&pos.meta, side)
		for b := range pos.boards {
			if !pos.terminal[b] {
				value += tictactoe.SimpleEstimate(&pos.boards[b], side)
			}
		}
		return value
	}
}
