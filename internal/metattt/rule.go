// Package metattt implements ultimate tic-tac-toe: each cell of an outer
// 3x3 board is itself a 3x3 board. Winning an inner board marks the
// matching cell of the meta board; three marks in a row on the meta board
// win the game.
package metattt

import (
	"strings"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

// Boards is the number of inner boards.
const Boards = tictactoe.Cells

// Cells is the number of playable cells across all inner boards.
const Cells = Boards * tictactoe.Cells

// Move indexes a cell, 0..80: inner board m/9, cell within it m%9.
type Move uint8

// NewMove builds a move from an inner board index and a cell index.
func NewMove(board, cell uint8) Move {
	return Move(board*tictactoe.Cells + cell)
}

// Board returns the inner board index of the move.
func (m Move) Board() uint8 { return uint8(m) / tictactoe.Cells }

// Cell returns the cell index within the inner board.
func (m Move) Cell() uint8 { return uint8(m) % tictactoe.Cells }

// Rule is an ultimate tic-tac-toe position. A move is legal in any inner
// board that is not yet terminal; an inner board becomes terminal when it
// is won (its winner is marked on the meta board) or full.
type Rule struct {
	boards   [Boards]tictactoe.Rule
	meta     tictactoe.Rule
	terminal [Boards]bool
	filled   [Boards]uint8
}

// NewRule returns an empty position.
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

// GenerateMoves appends every empty cell of every non-terminal inner board
// to *buf.
func (r *Rule) GenerateMoves(buf *[]Move) {
	for b := uint8(0); b < Boards; b++ {
		if r.terminal[b] {
			continue
		}
		for c := uint8(0); c < tictactoe.Cells; c++ {
			if r.boards[b].Cell(tictactoe.Move(c)) == game.None {
				*buf = append(*buf, NewMove(b, c))
			}
		}
	}
}

// ApplyMove plays p's mark and propagates a decided inner board onto the
// meta board.
func (r *Rule) ApplyMove(m Move, p game.Player) {
	b := m.Board()
	r.boards[b].ApplyMove(tictactoe.Move(m.Cell()), p)
	r.filled[b]++
	if r.terminal[b] {
		return
	}
	if w := r.boards[b].Winner(); w != game.None {
		r.terminal[b] = true
		r.meta.ApplyMove(tictactoe.Move(b), w)
	} else if r.filled[b] == tictactoe.Cells {
		r.terminal[b] = true
	}
}

// UndoMove reverses a preceding ApplyMove, clearing any meta mark or
// terminal flag that the move caused. No move can follow inside a terminal
// board, so a set flag was necessarily caused by the move being undone.
func (r *Rule) UndoMove(m Move, p game.Player) {
	b := m.Board()
	r.boards[b].UndoMove(tictactoe.Move(m.Cell()), p)
	r.filled[b]--
	if r.terminal[b] && r.boards[b].Winner() == game.None && r.filled[b] < tictactoe.Cells {
		r.terminal[b] = false
		if r.meta.Cell(tictactoe.Move(b)) != game.None {
			r.meta.UndoMove(tictactoe.Move(b), p)
		}
	}
}

// Winner returns the side holding a complete line on the meta board.
func (r *Rule) Winner() game.Player {
	return r.meta.Winner()
}

// InnerBoard returns a read-only view of inner board b.
func (r *Rule) InnerBoard(b uint8) *tictactoe.Rule {
	return &r.boards[b]
}

// MetaCell returns the meta-board mark for inner board b.
func (r *Rule) MetaCell(b uint8) game.Player {
	return r.meta.Cell(tictactoe.Move(b))
}

// Terminal reports whether inner board b is decided or full.
func (r *Rule) Terminal(b uint8) bool {
	return r.terminal[b]
}

// String renders the nested position; decided inner boards show their
// meta mark in the centre, as the original board printer does.
func (r *Rule) String() string {
	var out strings.Builder
	for i := 0; i < tictactoe.Size; i++ {
		for i2 := 0; i2 < tictactoe.Size; i2++ {
			for j := 0; j < tictactoe.Size; j++ {
				b := uint8(i*tictactoe.Size + j)
				for j2 := 0; j2 < tictactoe.Size; j2++ {
					if w := r.MetaCell(b); w != game.None {
						if i2 == tictactoe.Size/2 && j2 == tictactoe.Size/2 {
							out.WriteString(w.String())
						} else {
							out.WriteByte(' ')
						}
						continue
					}
					cell := tictactoe.Move(i2*tictactoe.Size + j2)
					out.WriteString(r.boards[b].Cell(cell).String())
				}
				out.WriteByte(' ')
			}
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	return out.String()
}
