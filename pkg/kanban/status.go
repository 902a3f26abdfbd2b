package kanban

import "github.com/bft-labs/kanban/internal/app"

// Status is the lifecycle status of a session's plugins.
type Status int

const (
	StatusClosed Status = iota
	StatusOpening
	StatusOpen
	StatusClosing
	StatusFailed
)

func (s Status) String() string {
	return app.Status(s).String()
}

// StatusChange describes a status transition.
type StatusChange struct {
	Previous Status
	Current  Status
	Reason   string
}

// StatusHandler is called synchronously on every status transition.
type StatusHandler func(StatusChange)

type statusObserver struct {
	handler StatusHandler
}

func (o statusObserver) OnStatusChange(previous, current app.Status, reason string) {
	if o.handler == nil {
		return
	}
	o.handler(StatusChange{
		Previous: Status(previous),
		Current:  Status(current),
		Reason:   reason,
	})
}
