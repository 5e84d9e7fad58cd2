package runner

import "github.com/Mgrdich/TermTacToe/internal/game"

type slot[M comparable] struct {
	move   M
	cancel bool
}

// Interactive is an Algorithm whose moves are supplied from outside: a
// search cycle blocks on a single-slot channel until SetMove delivers the
// move, and Halt delivers a cancellation sentinel instead.
type Interactive[M comparable] struct {
	ch chan slot[M]
}

// NewInteractive returns an empty interactive algorithm.
func NewInteractive[M comparable]() *Interactive[M] {
	return &Interactive[M]{ch: make(chan slot[M], 1)}
}

// SetMove hands the externally chosen move to a waiting search cycle.
// A second move before the first is consumed is dropped.
func (i *Interactive[M]) SetMove(m M) {
	select {
	case i.ch <- slot[M]{move: m}:
	default:
	}
}

// SelectMove implements Algorithm by blocking until SetMove or Halt.
func (i *Interactive[M]) SelectMove(game.Player) (M, bool) {
	s := <-i.ch
	if s.cancel {
		var zero M
		return zero, false
	}
	return s.move, true
}

// Advance implements Algorithm. The external player tracks the game
// itself, so there is no state to update.
func (i *Interactive[M]) Advance(M, game.Player) {}

// Halt implements Algorithm by unblocking a pending SelectMove with a
// sentinel the receiver treats as cancellation.
func (i *Interactive[M]) Halt() {
	select {
	case i.ch <- slot[M]{cancel: true}:
	default:
	}
}

// Reset implements Algorithm by draining any undelivered move.
func (i *Interactive[M]) Reset() {
	select {
	case <-i.ch:
	default:
	}
}

// Effort implements Algorithm; a human spends no search effort the
// engine could count.
func (i *Interactive[M]) Effort() uint64 { return 0 }
