package mcts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

func newTTT(seed int64) *MCTS[tictactoe.Move] {
	return NewRand[tictactoe.Move](tictactoe.NewRule(), DefaultExploration,
		rand.New(rand.NewSource(seed)))
}

func TestRootVisitCountEqualsSimulations(t *testing.T) {
	const n = 500
	tr := newTTT(1)
	tr.Run(n, game.P1)

	root := tr.Root()
	assert.EqualValues(t, n, root.Denominator, "the root is visited once per simulation")
	assert.EqualValues(t, n, tr.Simulations())

	sum := 0.0
	for _, c := range root.Children {
		sum += c.Denominator
	}
	assert.EqualValues(t, n, sum, "every visit after expansion descends through exactly one child")
}

func TestVisitSumInvariantHoldsBelowRoot(t *testing.T) {
	tr := newTTT(2)
	tr.Run(2000, game.P1)

	var check func(n *Node[tictactoe.Move])
	check = func(n *Node[tictactoe.Move]) {
		if !n.Expanded || len(n.Children) == 0 {
			return
		}
		sum := 0.0
		for _, c := range n.Children {
			sum += c.Denominator
		}
		// The node's own first visit was a playout from it, before it was
		// expanded.
		if n.Denominator != sum+1 {
			t.Fatalf("visit invariant broken: node %v has %v visits, children sum %v",
				n.Move, n.Denominator, sum)
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	for _, c := range tr.Root().Children {
		check(c)
	}
}

func TestConvergesToCentreOrCorner(t *testing.T) {
	tr := newTTT(3)
	tr.Run(10000, game.P1)

	move, ok := MostVisited[tictactoe.Move]{}.Choose(tr.Root())
	require.True(t, ok)
	switch move {
	case 0, 2, 4, 6, 8:
	default:
		t.Errorf("most-visited opening %d is not a corner or the centre", move)
	}
}

func TestTerminalRootStaysChildless(t *testing.T) {
	r := tictactoe.NewRule()
	r.ApplyMove(0, game.P1)
	r.ApplyMove(1, game.P1)
	r.ApplyMove(2, game.P1)

	tr := NewRand[tictactoe.Move](r, DefaultExploration, rand.New(rand.NewSource(4)))
	tr.Run(50, game.P2)

	root := tr.Root()
	assert.True(t, root.Expanded, "a terminal node is marked expanded")
	assert.Empty(t, root.Children)
	assert.EqualValues(t, 50, root.Denominator)

	_, ok := MostVisited[tictactoe.Move]{}.Choose(root)
	assert.False(t, ok, "no move exists in a terminal position")
}

func TestAdvanceKeepsSubtreeStatistics(t *testing.T) {
	tr := newTTT(5)
	tr.Run(1000, game.P1)

	move, ok := MostVisited[tictactoe.Move]{}.Choose(tr.Root())
	require.True(t, ok)

	var chosen *Node[tictactoe.Move]
	for _, c := range tr.Root().Children {
		if c.Move == move {
			chosen = c
		}
	}
	require.NotNil(t, chosen)
	visits, score := chosen.Denominator, chosen.Numerator

	tr.Advance(move, game.P1)

	root := tr.Root()
	assert.Equal(t, visits, root.Denominator, "rebasing keeps the child's visit count")
	assert.Equal(t, score, root.Numerator, "rebasing keeps the child's reward sum")
	assert.Equal(t, move, root.Move)
	if tr.Rule().(*tictactoe.Rule).Cell(move) != game.P1 {
		t.Error("Advance must apply the move to the root position")
	}
}

func TestAdvanceOnUnknownMoveStartsFresh(t *testing.T) {
	tr := newTTT(6)
	// No search yet: the root is unexpanded.
	tr.Advance(4, game.P1)

	root := tr.Root()
	assert.False(t, root.Expanded)
	assert.Zero(t, root.Denominator)
	if tr.Rule().(*tictactoe.Rule).Cell(4) != game.P1 {
		t.Error("Advance must apply the move even without a matching child")
	}
}

func TestReuseAccumulatesAcrossSearches(t *testing.T) {
	const first, second = 400, 300

	tr := newTTT(7)
	tr.Run(first, game.P1)

	move, ok := MostVisited[tictactoe.Move]{}.Choose(tr.Root())
	require.True(t, ok)
	var before float64
	for _, c := range tr.Root().Children {
		if c.Move == move {
			before = c.Denominator
		}
	}

	tr.Advance(move, game.P1)
	tr.Run(second, game.P2)

	root := tr.Root()
	assert.EqualValues(t, before+second, root.Denominator,
		"counters along the retained path reflect both searches")
	assert.EqualValues(t, first+second, tr.Simulations())
}

func TestRunClearsStaleStopFlag(t *testing.T) {
	tr := newTTT(8)
	tr.Stop()
	// Run clears the flag on entry, then checks it per iteration; a
	// pre-set flag must not leak into the new search.
	tr.Run(10, game.P1)
	assert.EqualValues(t, 10, tr.Simulations())
}

func TestResetDropsTreeAndPosition(t *testing.T) {
	tr := newTTT(9)
	tr.Run(100, game.P1)
	move, _ := MostVisited[tictactoe.Move]{}.Choose(tr.Root())
	tr.Advance(move, game.P1)

	tr.Reset()
	assert.Zero(t, tr.Root().Denominator)
	assert.False(t, tr.Root().Expanded)
	assert.Zero(t, tr.Simulations())
	if tr.Rule().(*tictactoe.Rule).Cell(move) != game.None {
		t.Error("Reset must restore the initial position")
	}
}
