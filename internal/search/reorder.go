// Package search implements the alpha-beta engines: a depth-bounded
// negamax and a minimax variant that records its search tree, plus the
// move-ordering policies both share.
package search

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// A Reorder permutes a window of candidate moves in place before the
// engine tries them. It must leave the rule state exactly as found.
type Reorder[M comparable] func(r game.Rule[M], side game.Player, moves []M)

// NewShuffle returns a reorder applying a uniform random permutation,
// seeded from the clock.
func NewShuffle[M comparable]() Reorder[M] {
	return NewShuffleRand[M](rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewShuffleRand is NewShuffle with a caller-supplied generator, for
// deterministic tests.
func NewShuffleRand[M comparable](rng *rand.Rand) Reorder[M] {
	return func(_ game.Rule[M], _ game.Player, moves []M) {
		rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
}

// NewReorderByScore returns a reorder that shuffles first (random
// tie-breaking), scores every move by applying it, evaluating and undoing,
// then sorts best-first for the side to move: descending for P1, ascending
// for P2. NaN scores sort last regardless of side.
func NewReorderByScore[M comparable](eval game.Evaluator[M]) Reorder[M] {
	return NewReorderByScoreRand(eval, rand.New(rand.NewSource(time.Now().UnixNano())))
}

type scoredMove[M comparable] struct {
	score float64
	move  M
}

// NewReorderByScoreRand is NewReorderByScore with a caller-supplied
// generator.
func NewReorderByScoreRand[M comparable](eval game.Evaluator[M], rng *rand.Rand) Reorder[M] {
	shuffle := NewShuffleRand[M](rng)
	var scores []scoredMove[M]
	return func(r game.Rule[M], side game.Player, moves []M) {
		shuffle(r, side, moves)
		scores = scores[:0]
		for _, m := range moves {
			r.ApplyMove(m, side)
			scores = append(scores, scoredMove[M]{eval(r, side), m})
			r.UndoMove(m, side)
		}
		sort.SliceStable(scores, func(i, j int) bool {
			a, b := scores[i].score, scores[j].score
			if math.IsNaN(a) {
				return false
			}
			if math.IsNaN(b) {
				return true
			}
			if side == game.P1 {
				return a > b
			}
			return a < b
		})
		for i, s := range scores {
			moves[i] = s.move
		}
	}
}
