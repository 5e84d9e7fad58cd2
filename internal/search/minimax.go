package search

import (
	"math"
	"sync/atomic"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// Vertex is one recorded node of a minimax search. Vertices live in a flat
// slice in depth-first order: a vertex is followed immediately by the
// subtrees of its children. Value is stored from P1's perspective. The
// root carries no move.
type Vertex[M comparable] struct {
	Move       M
	HasMove    bool
	Value      float64
	ChildCount int
	BestMove   M
	HasBest    bool
}

// A RecursionPolicy decides whether the search may descend below a node.
type RecursionPolicy interface {
	// Descend reports whether a node ply plies below the root may recurse
	// given the number of vertices recorded so far. A node that may not
	// descend is evaluated as a leaf.
	Descend(ply, vertices int) bool
}

// MaxDepth bounds the search to a fixed number of plies, like Negamax.
type MaxDepth int

// Descend implements RecursionPolicy.
func (d MaxDepth) Descend(ply, _ int) bool {
	return ply < int(d)
}

// MaxVertices stops descending once the recorded tree has reached the
// given size. Nodes already expanding on the stack still record their
// remaining children, so the final count can overshoot the bound by a
// batch of siblings per stack level.
type MaxVertices int

// Descend implements RecursionPolicy.
func (v MaxVertices) Descend(_, vertices int) bool {
	return vertices < int(v)
}

// Minimax computes the same values as Negamax but records every visited
// node as a Vertex, supports recursion policies other than fixed depth and
// leaves the root-move choice to a RootChooser.
type Minimax[M comparable] struct {
	initial  game.Rule[M]
	rule     game.Rule[M]
	eval     game.Evaluator[M]
	reorder  Reorder[M]
	policy   RecursionPolicy
	moves    []M
	vertices []Vertex[M]
	nodes    uint64
	stop     atomic.Bool
}

// NewMinimax builds an engine starting from a clone of initial.
func NewMinimax[M comparable](initial game.Rule[M], eval game.Evaluator[M], reorder Reorder[M], policy RecursionPolicy) *Minimax[M] {
	return &Minimax[M]{
		initial: initial.Clone(),
		rule:    initial.Clone(),
		eval:    eval,
		reorder: reorder,
		policy:  policy,
	}
}

// Rule exposes the engine's internal position so the caller can advance it
// between searches.
func (m *Minimax[M]) Rule() game.Rule[M] {
	return m.rule
}

// Nodes returns the number of nodes visited since construction or the last
// Reset.
func (m *Minimax[M]) Nodes() uint64 {
	return m.nodes
}

// Stop asks a running search to return early. The flag is cleared when the
// next search starts.
func (m *Minimax[M]) Stop() {
	m.stop.Store(true)
}

// Stopped reports whether the last search was cancelled.
func (m *Minimax[M]) Stopped() bool {
	return m.stop.Load()
}

// Reset restores the initial position and drops the recorded tree.
func (m *Minimax[M]) Reset() {
	m.rule.CopyFrom(m.initial)
	m.moves = m.moves[:0]
	m.vertices = m.vertices[:0]
	m.nodes = 0
	m.stop.Store(false)
}

// Vertices returns the recorded tree of the last search. The slice is a
// snapshot only between a finished search and the next one.
func (m *Minimax[M]) Vertices() []Vertex[M] {
	return m.vertices
}

// Root returns the recorded root vertex of the last search.
func (m *Minimax[M]) Root() (Vertex[M], bool) {
	if len(m.vertices) == 0 {
		var zero Vertex[M]
		return zero, false
	}
	return m.vertices[0], true
}

// RootChildren returns the root's immediate children in exploration order.
func (m *Minimax[M]) RootChildren() []Vertex[M] {
	return ChildVertices(m.vertices, 0)
}

// ChildVertices collects the immediate children of vertices[parent] from a
// depth-first recorded tree.
func ChildVertices[M comparable](vertices []Vertex[M], parent int) []Vertex[M] {
	if parent >= len(vertices) {
		return nil
	}
	out := make([]Vertex[M], 0, vertices[parent].ChildCount)
	i := parent + 1
	for c := 0; c < vertices[parent].ChildCount; c++ {
		out = append(out, vertices[i])
		i = SubtreeEnd(vertices, i)
	}
	return out
}

// SubtreeEnd returns the index one past the subtree rooted at
// vertices[i] in a depth-first recorded tree.
func SubtreeEnd[M comparable](vertices []Vertex[M], i int) int {
	end := i + 1
	for c := 0; c < vertices[i].ChildCount; c++ {
		end = SubtreeEnd(vertices, end)
	}
	return end
}

// Search explores the game tree under the engine's recursion policy and
// returns the value from side's perspective, recording a Vertex per
// visited node.
func (m *Minimax[M]) Search(side game.Player) float64 {
	m.stop.Store(false)
	m.moves = m.moves[:0]
	m.vertices = m.vertices[:0]
	m.vertices = append(m.vertices, Vertex[M]{})
	return m.rec(0, game.WinScore(game.P2), game.WinScore(game.P1), side)
}

func (m *Minimax[M]) rec(ply int, alpha, beta float64, side game.Player) float64 {
	m.nodes++

	if m.stop.Load() {
		return 0
	}

	if w := m.rule.Winner(); w != game.None {
		if w == side {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}

	prev := len(m.moves)
	m.rule.GenerateMoves(&m.moves)
	total := len(m.moves)

	if prev == total {
		return 0
	}

	if !m.policy.Descend(ply, len(m.vertices)) {
		return float64(side) * m.eval(m.rule, side)
	}

	m.reorder(m.rule, side, m.moves[prev:total])

	// The vertex describing this node was appended by the parent (or by
	// Search for the root); its children are written back after the loop.
	cur := len(m.vertices) - 1

	value := math.Inf(-1)
	best := prev
	children := 0
	for i := prev; i < total; i++ {
		mv := m.moves[i]
		m.rule.ApplyMove(mv, side)

		idx := len(m.vertices)
		m.vertices = append(m.vertices, Vertex[M]{Move: mv, HasMove: true})
		children++

		v := -m.rec(ply+1, -beta, -alpha, side.Other())
		m.vertices[idx].Value = float64(side) * v

		m.rule.UndoMove(mv, side)
		m.moves = m.moves[:total]

		if v > value {
			value = v
			best = i
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	m.vertices[cur].ChildCount = children
	m.vertices[cur].BestMove = m.moves[best]
	m.vertices[cur].HasBest = true

	m.moves[prev], m.moves[best] = m.moves[best], m.moves[prev]
	return value
}
