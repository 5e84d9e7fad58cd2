package game

// Rule is a mutable game position, generic over the move representation M.
// Moves are opaque values; a rule must never produce duplicates in a single
// GenerateMoves call.
//
// ApplyMove followed by UndoMove with the same arguments must restore the
// position exactly, and a Clone must be fully independent of its source.
type Rule[M comparable] interface {
	// Clone returns an independent deep copy of the position.
	Clone() Rule[M]

	// CopyFrom overwrites the position with other's state. other must be
	// the same concrete type.
	CopyFrom(other Rule[M])

	// GenerateMoves appends every legal move to *buf. The buffer is never
	// cleared; callers own the slice and truncate it themselves.
	GenerateMoves(buf *[]M)

	// ApplyMove plays m for p.
	ApplyMove(m M, p Player)

	// UndoMove reverses a preceding ApplyMove with the same arguments.
	UndoMove(m M, p Player)

	// Winner returns P1 or P2 once a side has won, otherwise None. A draw
	// is None together with an empty legal-move list.
	Winner() Player
}

// An Evaluator scores a position heuristically from P1's perspective;
// positive favours P1. side is the player to move, for evaluators that
// care about tempo. Evaluators must be pure and may return +/-Inf for
// already decided positions.
type Evaluator[M comparable] func(r Rule[M], side Player) float64
