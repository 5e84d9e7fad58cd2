package search

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

func newTTTMinimax(r *tictactoe.Rule, policy RecursionPolicy, seed int64) *Minimax[tictactoe.Move] {
	return NewMinimax[tictactoe.Move](
		r,
		tictactoe.SimpleEstimate,
		NewShuffleRand[tictactoe.Move](rand.New(rand.NewSource(seed))),
		policy,
	)
}

func TestMinimaxMatchesNegamaxValue(t *testing.T) {
	r := tictactoe.NewRule()
	place(r, game.P1, 0, 1)
	place(r, game.P2, 3, 4)

	for depth := 1; depth <= 4; depth++ {
		n := newTTTNegamax(t, r, 1)
		m := newTTTMinimax(r, MaxDepth(depth), 1)

		nv := n.Search(depth, game.P1)
		mv := m.Search(game.P1)
		if nv != mv {
			t.Errorf("depth %d: minimax value %v != negamax value %v", depth, mv, nv)
		}
	}
}

func TestMinimaxRecordsVertices(t *testing.T) {
	r := tictactoe.NewRule()
	place(r, game.P1, 0, 1)
	place(r, game.P2, 3, 4)

	m := newTTTMinimax(r, MaxDepth(2), 1)
	value := m.Search(game.P1)
	require.True(t, math.IsInf(value, 1), "win in one must score +Inf")

	root, ok := m.Root()
	require.True(t, ok)
	assert.False(t, root.HasMove, "the root vertex carries no move")
	require.True(t, root.HasBest)
	assert.Equal(t, tictactoe.Move(2), root.BestMove)

	children := m.RootChildren()
	require.Equal(t, root.ChildCount, len(children))
	for _, c := range children {
		assert.True(t, c.HasMove, "every non-root vertex carries a move")
	}
}

func TestMinimaxVertexValuesAreP1Perspective(t *testing.T) {
	// P2 to move can win immediately; the winning child must record -Inf.
	r := tictactoe.NewRule()
	place(r, game.P2, 0, 1)
	place(r, game.P1, 3, 4)

	m := newTTTMinimax(r, MaxDepth(2), 1)
	m.Search(game.P2)

	root, _ := m.Root()
	require.True(t, root.HasBest)
	require.Equal(t, tictactoe.Move(2), root.BestMove)

	for _, c := range m.RootChildren() {
		if c.Move == 2 {
			assert.True(t, math.IsInf(c.Value, -1),
				"P2's winning child stores -Inf from P1's perspective, got %v", c.Value)
		}
	}
}

func TestMaxVerticesBoundsTheTree(t *testing.T) {
	const bound = 50
	m := newTTTMinimax(tictactoe.NewRule(), MaxVertices(bound), 1)
	m.Search(game.P1)

	// The policy is checked before descending; nodes already expanding
	// still record their remaining children, so allow one sibling batch
	// per stack level of overshoot.
	if got := len(m.Vertices()); got > bound+tictactoe.Cells*tictactoe.Cells {
		t.Errorf("recorded %d vertices, bound %d", got, bound)
	}
	if got := len(m.Vertices()); got < bound/2 {
		t.Errorf("recorded only %d vertices under a %d bound", got, bound)
	}
}

func TestSubtreeWalk(t *testing.T) {
	m := newTTTMinimax(tictactoe.NewRule(), MaxDepth(2), 1)
	m.Search(game.P1)

	vs := m.Vertices()
	require.NotEmpty(t, vs)
	assert.Equal(t, len(vs), SubtreeEnd(vs, 0), "the root subtree spans the whole slice")

	var count func(i int) int
	count = func(i int) int {
		n := 1
		j := i + 1
		for c := 0; c < vs[i].ChildCount; c++ {
			n += count(j)
			j = SubtreeEnd(vs, j)
		}
		return n
	}
	total := count(0)
	assert.Equal(t, len(vs), total, "child counts must describe the flat layout")
}

func TestFirstChooser(t *testing.T) {
	r := tictactoe.NewRule()
	place(r, game.P1, 0, 1)
	place(r, game.P2, 3, 4)

	m := newTTTMinimax(r, MaxDepth(3), 1)
	m.Search(game.P1)

	root, _ := m.Root()
	move, ok := First[tictactoe.Move]{}.Choose(root, m.RootChildren(), game.P1)
	require.True(t, ok)
	assert.Equal(t, tictactoe.Move(2), move)
}

func TestFirstChooserEmptyTree(t *testing.T) {
	_, ok := First[tictactoe.Move]{}.Choose(Vertex[tictactoe.Move]{}, nil, game.P1)
	assert.False(t, ok)
}

func TestEpsilonBucketChooser(t *testing.T) {
	children := []Vertex[tictactoe.Move]{
		{Move: 0, HasMove: true, Value: 3.0},
		{Move: 1, HasMove: true, Value: 2.5},
		{Move: 2, HasMove: true, Value: -4.0},
	}
	root := Vertex[tictactoe.Move]{HasBest: true, BestMove: 0}

	t.Run("zero width picks the best", func(t *testing.T) {
		c := NewEpsilonBucketRand[tictactoe.Move](0, rand.New(rand.NewSource(1)))
		for i := 0; i < 10; i++ {
			move, ok := c.Choose(root, children, game.P1)
			require.True(t, ok)
			assert.Equal(t, tictactoe.Move(0), move)
		}
	})

	t.Run("width admits near ties", func(t *testing.T) {
		c := NewEpsilonBucketRand[tictactoe.Move](1.0, rand.New(rand.NewSource(1)))
		seen := map[tictactoe.Move]bool{}
		for i := 0; i < 100; i++ {
			move, ok := c.Choose(root, children, game.P1)
			require.True(t, ok)
			seen[move] = true
			assert.NotEqual(t, tictactoe.Move(2), move, "a far-worse child never enters the bucket")
		}
		assert.True(t, seen[0] && seen[1], "both near ties should be drawn eventually")
	})

	t.Run("side flips the comparison", func(t *testing.T) {
		c := NewEpsilonBucketRand[tictactoe.Move](0, rand.New(rand.NewSource(1)))
		move, ok := c.Choose(root, children, game.P2)
		require.True(t, ok)
		assert.Equal(t, tictactoe.Move(2), move, "P2 prefers the most negative P1-perspective value")
	})
}

func TestMinimaxResetDropsTree(t *testing.T) {
	m := newTTTMinimax(tictactoe.NewRule(), MaxDepth(3), 1)
	m.Search(game.P1)
	require.NotEmpty(t, m.Vertices())

	m.Reset()
	assert.Empty(t, m.Vertices())
	assert.EqualValues(t, 0, m.Nodes())
}
