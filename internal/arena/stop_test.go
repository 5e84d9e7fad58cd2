package arena

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/mcts"
	"github.com/Mgrdich/TermTacToe/internal/runner"
	"github.com/Mgrdich/TermTacToe/internal/tictactoe"
)

func TestStopAbortsTheSeries(t *testing.T) {
	mctsRunner := func(name string, side game.Player, seed int64) *runner.Runner[tictactoe.Move] {
		tree := mcts.NewRand[tictactoe.Move](tictactoe.NewRule(), mcts.DefaultExploration,
			rand.New(rand.NewSource(seed)))
		return runner.New[tictactoe.Move](name, side,
			runner.NewMCTS(tree, 1_000_000, mcts.MostVisited[tictactoe.Move]{}))
	}

	m, err := NewMatch[tictactoe.Move](tictactoe.NewRule(),
		mctsRunner("a", game.P1, 1), mctsRunner("b", game.P2, 2),
		Config{Rounds: 1000, StartingSide: game.P1, Alternate: true}, nil)
	require.NoError(t, err)
	defer m.Close()

	done := make(chan *Stats, 1)
	go func() { done <- m.Run() }()

	time.Sleep(20 * time.Millisecond)
	m.Stop()

	select {
	case stats := <-done:
		if stats.Rounds >= 1000 {
			t.Errorf("Stop did not shorten the series: %d rounds", stats.Rounds)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("the series did not stop")
	}
}
