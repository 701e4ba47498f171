package draw

import "errors"

// Sentinel errors returned by the draw engine. All of them are recoverable
// from the caller's point of view: the session is never left in a
// partially-mutated state when one of these is returned.
var (
	// ErrInvalidTransition signals a slot operation that is not allowed from
	// the slot's current state, e.g. confirming an empty slot or overwriting
	// a confirmed winner.
	ErrInvalidTransition = errors.New("invalid slot transition")

	// ErrJustificationRequired is returned when removing a confirmed winner
	// without a non-blank justification.
	ErrJustificationRequired = errors.New("justification required to remove a confirmed winner")

	// ErrNotEligible is returned when a manual selection names a participant
	// outside the eligible pool.
	ErrNotEligible = errors.New("participant is not eligible")

	// ErrZeroEligible is returned by single-slot operations that need a fresh
	// winner when the eligible pool is empty. Bulk draws report this
	// condition as a zero-selected outcome instead.
	ErrZeroEligible = errors.New("zero eligible participants")

	// ErrDrawInProgress rejects a roll request while the session is already
	// in the drawing state.
	ErrDrawInProgress = errors.New("a draw is already in progress")

	// ErrInvalidState rejects an operation not allowed in the session's
	// current lifecycle state.
	ErrInvalidState = errors.New("operation not allowed in current session state")

	// ErrPositionOutOfRange signals a slot position outside the session's
	// slot list.
	ErrPositionOutOfRange = errors.New("slot position out of range")

	// ErrNoSlots rejects creating a session without any prize slots.
	ErrNoSlots = errors.New("session has no prize slots")
)
