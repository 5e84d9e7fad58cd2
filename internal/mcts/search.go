package mcts

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// DefaultExploration is the default UCB1 exploration constant.
const DefaultExploration = 0.40

// MCTS is a Monte-Carlo tree searcher with a persistent root. The tree
// survives across searches; Advance rebases it when a move is played so
// the matching subtree's statistics are retained.
type MCTS[M comparable] struct {
	initial     game.Rule[M]
	rule        game.Rule[M] // position at the root
	scratch     game.Rule[M] // per-iteration working copy
	root        *Node[M]
	exploration float64
	rng         *rand.Rand
	moves       []M
	path        []*Node[M]
	simulations uint64
	stop        atomic.Bool
}

// New builds a searcher rooted at a clone of initial, seeded from the
// clock.
func New[M comparable](initial game.Rule[M], exploration float64) *MCTS[M] {
	return NewRand(initial, exploration, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRand is New with a caller-supplied generator, for deterministic
// tests.
func NewRand[M comparable](initial game.Rule[M], exploration float64, rng *rand.Rand) *MCTS[M] {
	return &MCTS[M]{
		initial:     initial.Clone(),
		rule:        initial.Clone(),
		scratch:     initial.Clone(),
		root:        &Node[M]{},
		exploration: exploration,
		rng:         rng,
	}
}

// Root exposes the tree for read-only inspection, valid between searches.
func (t *MCTS[M]) Root() *Node[M] {
	return t.root
}

// Rule exposes the position the tree is rooted at.
func (t *MCTS[M]) Rule() game.Rule[M] {
	return t.rule
}

// Exploration returns the configured UCB1 constant.
func (t *MCTS[M]) Exploration() float64 {
	return t.exploration
}

// Simulations returns the number of playouts run since construction or
// the last Reset.
func (t *MCTS[M]) Simulations() uint64 {
	return t.simulations
}

// Stop asks a running search to return early. The flag is cleared when
// the next Run starts.
func (t *MCTS[M]) Stop() {
	t.stop.Store(true)
}

// Reset drops the tree and restores the initial position.
func (t *MCTS[M]) Reset() {
	t.root = &Node[M]{}
	t.rule.CopyFrom(t.initial)
	t.simulations = 0
	t.stop.Store(false)
}

// Advance rebases the tree after m has been played by side. The matching
// root child becomes the new root, keeping its whole subtree; siblings and
// the old root are dropped. Without a matching child (unexpanded root or a
// search cancelled before enumeration) a fresh root is created.
func (t *MCTS[M]) Advance(m M, side game.Player) {
	var next *Node[M]
	for _, c := range t.root.Children {
		if c.Move == m {
			next = c
			break
		}
	}
	if next == nil {
		next = &Node[M]{Move: m}
	}
	t.root = next
	t.rule.ApplyMove(m, side)
}

// Run performs up to simulations select/expand/simulate/backpropagate
// iterations from the root, with side to move there, stopping early when
// cancelled.
func (t *MCTS[M]) Run(simulations int, side game.Player) {
	t.stop.Store(false)
	for i := 0; i < simulations; i++ {
		if t.stop.Load() {
			return
		}
		t.iterate(side)
	}
}

func (t *MCTS[M]) iterate(side game.Player) {
	t.simulations++
	t.scratch.CopyFrom(t.rule)
	t.path = t.path[:0]

	node := t.root
	t.path = append(t.path, node)
	turn := side              // side to move at node
	mover := side.Other()     // side that moved into node

	// Selection: descend while fully expanded and not terminal.
	for node.Expanded && len(node.Children) > 0 {
		var best *Node[M]
		bestUCB := 0.0
		for _, c := range node.Children {
			if u := c.UCB(node, t.exploration); best == nil || u > bestUCB {
				best, bestUCB = c, u
			}
		}
		node = best
		t.scratch.ApplyMove(node.Move, turn)
		t.path = append(t.path, node)
		mover = turn
		turn = turn.Other()
	}

	// Expansion and simulation.
	var winner game.Player
	if !node.Expanded && node != t.root && node.Denominator == 0 {
		// A child reached for the first time is simulated from directly;
		// it is expanded on its next visit.
		winner = t.playout(turn)
	} else if !node.Expanded {
		if w := t.scratch.Winner(); w != game.None {
			// Terminal: expanded with zero children.
			node.Expanded = true
			winner = w
		} else {
			prev := len(t.moves)
			t.scratch.GenerateMoves(&t.moves)
			generated := t.moves[prev:]
			if len(generated) == 0 {
				node.Expanded = true
				winner = game.None
			} else {
				node.Children = make([]*Node[M], len(generated))
				for i, m := range generated {
					node.Children[i] = &Node[M]{Move: m}
				}
				node.Expanded = true

				child := node.Children[t.rng.Intn(len(node.Children))]
				t.scratch.ApplyMove(child.Move, turn)
				t.path = append(t.path, child)
				mover = turn
				turn = turn.Other()
				winner = t.playout(turn)
			}
			t.moves = t.moves[:prev]
		}
	} else {
		// Expanded with no children: a terminal reached again.
		winner = t.scratch.Winner()
	}

	// Backpropagation: credit each node from the perspective of the side
	// that moved into it.
	pm := mover
	for i := len(t.path) - 1; i >= 0; i-- {
		n := t.path[i]
		n.Denominator++
		switch winner {
		case pm:
			n.Numerator++
		case pm.Other():
			n.Numerator--
		}
		pm = pm.Other()
	}
}

// playout plays uniformly random moves from the scratch position until a
// side wins or no moves remain, and returns the winner.
func (t *MCTS[M]) playout(turn game.Player) game.Player {
	for {
		if w := t.scratch.Winner(); w != game.None {
			return w
		}
		prev := len(t.moves)
		t.scratch.GenerateMoves(&t.moves)
		n := len(t.moves) - prev
		if n == 0 {
			return game.None
		}
		m := t.moves[prev+t.rng.Intn(n)]
		t.moves = t.moves[:prev]
		t.scratch.ApplyMove(m, turn)
		turn = turn.Other()
	}
}
