package search

import (
	"math"
	"math/rand"
	"time"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// A RootChooser picks the move to play from a finished minimax search:
// the recorded root and its immediate children.
type RootChooser[M comparable] interface {
	Choose(root Vertex[M], children []Vertex[M], side game.Player) (M, bool)
}

// First plays the alpha-beta best move recorded at the root.
type First[M comparable] struct{}

// Choose implements RootChooser.
func (First[M]) Choose(root Vertex[M], children []Vertex[M], _ game.Player) (M, bool) {
	if root.HasBest {
		return root.BestMove, true
	}
	if len(children) > 0 {
		return children[0].Move, true
	}
	var zero M
	return zero, false
}

// EpsilonBucket picks uniformly at random among the root children whose
// value, seen from the side to move, lies within Width of the best child.
// Ties near the best are therefore broken stochastically.
type EpsilonBucket[M comparable] struct {
	width float64
	rng   *rand.Rand
}

// NewEpsilonBucket builds a chooser with the given bucket width, seeded
// from the clock.
func NewEpsilonBucket[M comparable](width float64) *EpsilonBucket[M] {
	return NewEpsilonBucketRand[M](width, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEpsilonBucketRand is NewEpsilonBucket with a caller-supplied
// generator.
func NewEpsilonBucketRand[M comparable](width float64, rng *rand.Rand) *EpsilonBucket[M] {
	return &EpsilonBucket[M]{width: width, rng: rng}
}

// Choose implements RootChooser. Vertex values are recorded from P1's
// perspective and re-signed here for the side to move; NaN values never
// enter the bucket.
func (c *EpsilonBucket[M]) Choose(_ Vertex[M], children []Vertex[M], side game.Player) (M, bool) {
	if len(children) == 0 {
		var zero M
		return zero, false
	}

	best := math.Inf(-1)
	for _, ch := range children {
		if v := float64(side) * ch.Value; v > best {
			best = v
		}
	}

	bucket := make([]M, 0, len(children))
	for _, ch := range children {
		v := float64(side) * ch.Value
		if !math.IsNaN(v) && v >= best-c.width {
			bucket = append(bucket, ch.Move)
		}
	}
	if len(bucket) == 0 {
		return children[0].Move, true
	}
	return bucket[c.rng.Intn(len(bucket))], true
}
