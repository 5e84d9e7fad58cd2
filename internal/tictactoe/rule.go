// Package tictactoe implements the 3x3 game on the game.Rule contract.
package tictactoe

import (
	"strings"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// Size is the board edge length.
const Size = 3

// Cells is the number of board cells.
const Cells = Size * Size

// Move indexes a board cell, 0..8 row-major.
type Move uint8

// winLines enumerates every row, column and diagonal by cell index.
var winLines = [8][Size]Move{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Rule is a 3x3 tic-tac-toe position.
type Rule struct {
	board [Cells]game.Player
}

// NewRule returns an empty board.
func NewRule() *Rule {
	return &Rule{}
}

// Clone returns an independent deep copy of the position.
func (r *Rule) Clone() game.Rule[Move] {
	c := *r
	return &c
}

// CopyFrom overwrites the position with other's state.
func (r *Rule) CopyFrom(other game.Rule[Move]) {
	*r = *other.(*Rule)
}

// GenerateMoves appends every empty cell to *buf.
func (r *Rule) GenerateMoves(buf *[]Move) {
	for i, p := range r.board {
		if p == game.None {
			*buf = append(*buf, Move(i))
		}
	}
}

// ApplyMove places p's mark on cell m.
func (r *Rule) ApplyMove(m Move, p game.Player) {
	r.board[m] = p
}

// UndoMove clears cell m.
func (r *Rule) UndoMove(m Move, _ game.Player) {
	r.board[m] = game.None
}

// Winner returns the side holding a complete line, or None.
func (r *Rule) Winner() game.Player {
	for _, line := range winLines {
		p := r.board[line[0]]
		if p != game.None && r.board[line[1]] == p && r.board[line[2]] == p {
			return p
		}
	}
	return game.None
}

// Cell returns the mark on cell m.
func (r *Rule) Cell(m Move) game.Player {
	return r.board[m]
}

// String renders the board row by row for logs and the TUI.
func (r *Rule) String() string {
	var b strings.Builder
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			b.WriteString(r.board[i*Size+j].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
