package runner

import (
	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/mcts"
	"github.com/Mgrdich/TermTacToe/internal/search"
)

// NegamaxAlgorithm drives a search.Negamax at a fixed depth.
type NegamaxAlgorithm[M comparable] struct {
	engine *search.Negamax[M]
	depth  int
}

// NewNegamax wraps engine searching depth plies per cycle.
func NewNegamax[M comparable](engine *search.Negamax[M], depth int) *NegamaxAlgorithm[M] {
	return &NegamaxAlgorithm[M]{engine: engine, depth: depth}
}

// Engine exposes the wrapped searcher for inspection.
func (a *NegamaxAlgorithm[M]) Engine() *search.Negamax[M] { return a.engine }

// SelectMove implements Algorithm.
func (a *NegamaxAlgorithm[M]) SelectMove(side game.Player) (M, bool) {
	a.engine.Search(a.depth, side)
	if a.engine.Stopped() {
		var zero M
		return zero, false
	}
	return a.engine.BestMove()
}

// Advance implements Algorithm.
func (a *NegamaxAlgorithm[M]) Advance(m M, p game.Player) {
	a.engine.Rule().ApplyMove(m, p)
}

// Halt implements Algorithm.
func (a *NegamaxAlgorithm[M]) Halt() { a.engine.Stop() }

// Reset implements Algorithm.
func (a *NegamaxAlgorithm[M]) Reset() { a.engine.Reset() }

// Effort implements Algorithm.
func (a *NegamaxAlgorithm[M]) Effort() uint64 { return a.engine.Nodes() }

// MinimaxAlgorithm drives a search.Minimax and picks the root move with a
// configured chooser.
type MinimaxAlgorithm[M comparable] struct {
	engine  *search.Minimax[M]
	chooser search.RootChooser[M]
}

// NewMinimax wraps engine with chooser.
func NewMinimax[M comparable](engine *search.Minimax[M], chooser search.RootChooser[M]) *MinimaxAlgorithm[M] {
	return &MinimaxAlgorithm[M]{engine: engine, chooser: chooser}
}

// Engine exposes the wrapped searcher so the recorded tree can be
// visualised between cycles.
func (a *MinimaxAlgorithm[M]) Engine() *search.Minimax[M] { return a.engine }

// SelectMove implements Algorithm.
func (a *MinimaxAlgorithm[M]) SelectMove(side game.Player) (M, bool) {
	a.engine.Search(side)
	if a.engine.Stopped() {
		var zero M
		return zero, false
	}
	root, ok := a.engine.Root()
	if !ok {
		var zero M
		return zero, false
	}
	return a.chooser.Choose(root, a.engine.RootChildren(), side)
}

// Advance implements Algorithm.
func (a *MinimaxAlgorithm[M]) Advance(m M, p game.Player) {
	a.engine.Rule().ApplyMove(m, p)
}

// Halt implements Algorithm.
func (a *MinimaxAlgorithm[M]) Halt() { a.engine.Stop() }

// Reset implements Algorithm.
func (a *MinimaxAlgorithm[M]) Reset() { a.engine.Reset() }

// Effort implements Algorithm.
func (a *MinimaxAlgorithm[M]) Effort() uint64 { return a.engine.Nodes() }

// MCTSAlgorithm drives an mcts.MCTS with a fixed simulation budget per
// cycle. Advance rebases the tree, so statistics carry across both the
// runner's own moves and the opponent's replies.
type MCTSAlgorithm[M comparable] struct {
	tree        *mcts.MCTS[M]
	simulations int
	chooser     mcts.Chooser[M]
}

// NewMCTS wraps tree running simulations playouts per cycle.
func NewMCTS[M comparable](tree *mcts.MCTS[M], simulations int, chooser mcts.Chooser[M]) *MCTSAlgorithm[M] {
	return &MCTSAlgorithm[M]{tree: tree, simulations: simulations, chooser: chooser}
}

// Tree exposes the search tree for visualisation between cycles.
func (a *MCTSAlgorithm[M]) Tree() *mcts.MCTS[M] { return a.tree }

// SelectMove implements Algorithm.
func (a *MCTSAlgorithm[M]) SelectMove(side game.Player) (M, bool) {
	before := a.tree.Simulations()
	a.tree.Run(a.simulations, side)
	if int(a.tree.Simulations()-before) < a.simulations {
		// Cancelled before the budget was spent.
		var zero M
		return zero, false
	}
	return a.chooser.Choose(a.tree.Root())
}

// Advance implements Algorithm.
func (a *MCTSAlgorithm[M]) Advance(m M, p game.Player) {
	a.tree.Advance(m, p)
}

// Halt implements Algorithm.
func (a *MCTSAlgorithm[M]) Halt() { a.tree.Stop() }

// Reset implements Algorithm.
func (a *MCTSAlgorithm[M]) Reset() { a.tree.Reset() }

// Effort implements Algorithm.
func (a *MCTSAlgorithm[M]) Effort() uint64 { return a.tree.Simulations() }
