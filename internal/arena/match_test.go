package arena

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/runner"
	"github.com/Mgrdich/TermTacToe/internal/search"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

func negamaxRunner(name string, side game.Player, depth int, seed int64) *runner.Runner[tictactoe.Move] {
	engine := search.NewNegamax[tictactoe.Move](
		tictactoe.NewRule(),
		tictactoe.SimpleEstimate,
		search.NewShuffleRand[tictactoe.Move](rand.New(rand.NewSource(seed))),
	)
	return runner.New[tictactoe.Move](name, side, runner.NewNegamax(engine, depth))
}

func TestNewMatchValidation(t *testing.T) {
	a := negamaxRunner("a", game.P1, 2, 1)
	b := negamaxRunner("b", game.P1, 2, 2)

	_, err := NewMatch[tictactoe.Move](tictactoe.NewRule(), a, b,
		Config{Rounds: 1, StartingSide: game.P1}, nil)
	assert.Error(t, err, "two runners on the same side are misconfigured")

	c := negamaxRunner("c", game.P2, 2, 3)
	_, err = NewMatch[tictactoe.Move](tictactoe.NewRule(), a, c,
		Config{Rounds: 1, StartingSide: game.None}, nil)
	assert.Error(t, err, "the starting side must be set")

	_, err = NewMatch[tictactoe.Move](tictactoe.NewRule(), a, c,
		Config{Rounds: 0, StartingSide: game.P1}, nil)
	assert.Error(t, err, "a series needs at least one round")
}

func TestIdenticalEnginesAlwaysDraw(t *testing.T) {
	if testing.Short() {
		t.Skip("plays a full series")
	}
	a := negamaxRunner("alpha", game.P1, 5, 11)
	b := negamaxRunner("beta", game.P2, 5, 12)

	rounds := 0
	m, err := NewMatch[tictactoe.Move](tictactoe.NewRule(), a, b,
		Config{Rounds: 100, StartingSide: game.P1, Alternate: true},
		func(RoundResult) { rounds++ })
	require.NoError(t, err)
	defer m.Close()

	stats := m.Run()

	assert.Equal(t, 100, rounds, "the report callback fires once per round")
	assert.Equal(t, 100, stats.Draws, "tic-tac-toe between equal engines is always drawn")
	assert.Zero(t, stats.P1Wins)
	assert.Zero(t, stats.P2Wins)
	assert.Greater(t, stats.P1Effort, uint64(0))
	assert.Greater(t, stats.P2Effort, uint64(0))
	assert.Greater(t, stats.MeanRound, time.Duration(0))
}

// illegalAlgorithm always answers with the same move, legal or not.
type illegalAlgorithm struct{ move tictactoe.Move }

func (a *illegalAlgorithm) SelectMove(game.Player) (tictactoe.Move, bool) { return a.move, true }
func (a *illegalAlgorithm) Advance(tictactoe.Move, game.Player)           {}
func (a *illegalAlgorithm) Halt()                                         {}
func (a *illegalAlgorithm) Reset()                                        {}
func (a *illegalAlgorithm) Effort() uint64                                { return 0 }

func TestIllegalMoveLosesTheRound(t *testing.T) {
	bad := runner.New[tictactoe.Move]("cheater", game.P1, &illegalAlgorithm{move: 4})
	good := negamaxRunner("honest", game.P2, 2, 4)

	m, err := NewMatch[tictactoe.Move](tictactoe.NewRule(), bad, good,
		Config{Rounds: 3, StartingSide: game.P1}, nil)
	require.NoError(t, err)
	defer m.Close()

	stats := m.Run()

	// The cheater repeats cell 4; its second use in every round is illegal.
	assert.Equal(t, 3, stats.P2Wins, "every round goes to the honest engine")
	assert.Equal(t, 3, stats.IllegalRounds)
	for _, r := range stats.Results {
		assert.True(t, r.Illegal)
		assert.Equal(t, game.P2, r.Winner)
	}
}

func TestAlternatingSeriesReportsEveryRound(t *testing.T) {
	a := negamaxRunner("a", game.P1, 1, 5)
	b := negamaxRunner("b", game.P2, 1, 6)

	var moveCounts []int
	m, err := NewMatch[tictactoe.Move](tictactoe.NewRule(), a, b,
		Config{Rounds: 2, StartingSide: game.P1, Alternate: true},
		func(r RoundResult) { moveCounts = append(moveCounts, r.Moves) })
	require.NoError(t, err)
	defer m.Close()

	stats := m.Run()
	require.Len(t, moveCounts, 2)
	assert.Equal(t, stats.Rounds, 2)
}
