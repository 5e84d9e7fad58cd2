package treeviz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/mcts"
	"github.com/Mgrdich/TermTacToe/internal/search"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

func TestMinimaxDOT(t *testing.T) {
	engine := search.NewMinimax[tictactoe.Move](
		tictactoe.NewRule(),
		tictactoe.SimpleEstimate,
		search.NewShuffleRand[tictactoe.Move](rand.New(rand.NewSource(1))),
		search.MaxDepth(2),
	)
	engine.Search(game.P1)

	dot, err := MinimaxDOT(engine.Vertices(), 2)
	require.NoError(t, err)

	parsed, err := gographviz.Read([]byte(dot))
	require.NoError(t, err, "the emitted DOT must parse")
	assert.True(t, parsed.Directed)
	assert.True(t, strings.Contains(dot, "n0"), "the root node is present")
	assert.True(t, strings.Contains(dot, "value"), "labels carry values")
}

func TestMinimaxDOTEmptyTree(t *testing.T) {
	dot, err := MinimaxDOT[tictactoe.Move](nil, 3)
	require.NoError(t, err)
	_, err = gographviz.Read([]byte(dot))
	assert.NoError(t, err)
}

func TestMCTSDOT(t *testing.T) {
	tree := mcts.NewRand[tictactoe.Move](tictactoe.NewRule(), mcts.DefaultExploration,
		rand.New(rand.NewSource(2)))
	tree.Run(200, game.P1)

	dot, err := MCTSDOT(tree.Root(), tree.Exploration(), 2)
	require.NoError(t, err)

	parsed, err := gographviz.Read([]byte(dot))
	require.NoError(t, err)
	assert.True(t, parsed.Directed)
	assert.True(t, strings.Contains(dot, "root"))
	assert.True(t, strings.Contains(dot, "mean"))
}

func TestMCTSDOTDepthLimit(t *testing.T) {
	tree := mcts.NewRand[tictactoe.Move](tictactoe.NewRule(), mcts.DefaultExploration,
		rand.New(rand.NewSource(3)))
	tree.Run(200, game.P1)

	shallow, err := MCTSDOT(tree.Root(), tree.Exploration(), 1)
	require.NoError(t, err)
	deep, err := MCTSDOT(tree.Root(), tree.Exploration(), 3)
	require.NoError(t, err)

	assert.Less(t, strings.Count(shallow, "->"), strings.Count(deep, "->"),
		"a deeper cut renders more edges")
}
