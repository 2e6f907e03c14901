package x01

import "errors"

var (
	// ErrInvalidScore rejects a visit whose aggregate score cannot be thrown
	// with the reported number of darts.
	ErrInvalidScore = errors.New("visit score not achievable with darts thrown")

	// ErrWrongPlayer rejects a visit submitted out of turn.
	ErrWrongPlayer = errors.New("not this player's turn")

	// ErrMatchFinished rejects visits on a finished match. Undoing the
	// finishing visit is still allowed.
	ErrMatchFinished = errors.New("match already finished")

	// ErrLegClosed rejects appends to a leg that already has a winner.
	ErrLegClosed = errors.New("leg already finished")

	// ErrNothingToUndo reports an undo with no visit anywhere in the match.
	// Expected boundary case, not a caller mistake.
	ErrNothingToUndo = errors.New("nothing to undo")
)
