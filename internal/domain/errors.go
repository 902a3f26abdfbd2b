package domain

import "errors"

// Domain errors. Check with errors.Is.
var (
	// ErrUnhandledAction is the panic value cause when Transition receives an
	// action outside the known variant set.
	ErrUnhandledAction = errors.New("kanban: unhandled action")

	// ErrUnknownActionType is returned when a wire action carries a tag that
	// does not name any action.
	ErrUnknownActionType = errors.New("kanban: unknown action type")

	// ErrCorruptSnapshot is returned by strict loads when the persisted list
	// snapshot cannot be decoded.
	ErrCorruptSnapshot = errors.New("kanban: corrupt snapshot")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("kanban: invalid configuration")

	// ErrAlreadyOpen is returned when Start() is called on a running session.
	ErrAlreadyOpen = errors.New("kanban: already open")

	// ErrNotOpen is returned when Stop() is called on a session that is not running.
	ErrNotOpen = errors.New("kanban: not open")

	// ErrShutdownTimeout is returned when plugins do not stop in time.
	ErrShutdownTimeout = errors.New("kanban: shutdown timeout")
)
