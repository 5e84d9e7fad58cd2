package tictactoe

import "github.com/Mgrdich/TermTacToe/internal/game"

// TrivialEstimate scores a position +/-Inf once it is decided and 0
// otherwise.
func TrivialEstimate(r game.Rule[Move], _ game.Player) float64 {
	return game.WinScore(r.Winner())
}

// SimpleEstimate sums a per-line score over every row, column and diagonal:
// +/-Inf for a completed line, +1 for a line held only by P1, -1 for a line
// held only by P2 and 0 for contested or empty lines. Undefined if both
// sides hold completed lines.
func SimpleEstimate(r game.Rule[Move], _ game.Player) float64 {
	board := r.(*Rule)
	value := 0.0
	for _, line := range winLines {
		value += lineScore(board, line)
	}
	return value
}

func lineScore(r *Rule, line [Size]Move) float64 {
	var count1, count2 int
	for _, m := range line {
		switch r.board[m] {
		case game.P1:
			count1++
		case game.P2:
			count2++
		}
	}
	switch {
	case count1 == Size:
		return game.WinScore(game.P1)
	case count2 == Size:
		return game.WinScore(game.P2)
	case count1 != 0 && count2 == 0:
		return 1.0
	case count2 != 0 && count1 == 0:
		return -1.0
	default:
		return 0.0
	}
}
