// Package lifecycle keeps the host window alive and foregrounded. Two
// independent rules, both level-triggered: a close request is always
// vetoed, and a lost focus always triggers one refocus request.
package lifecycle

import "go.uber.org/zap"

// EventKind classifies a window lifecycle/focus notification.
type EventKind int

const (
	CloseRequested EventKind = iota
	FocusLost
	FocusGained
)

func (k EventKind) String() string {
	switch k {
	case CloseRequested:
		return "close-requested"
	case FocusLost:
		return "focus-lost"
	case FocusGained:
		return "focus-gained"
	}
	return "unknown"
}

// WindowEvent is one notification from the host window subsystem.
type WindowEvent struct {
	Kind EventKind
}

// Reaction is the guard's answer to a window event. The windowing adapter
// applies it natively: VetoClose swallows the close, Refocus requests the
// window be foregrounded again.
type Reaction int

const (
	None Reaction = iota
	VetoClose
	Refocus
)

// Reactor answers window events. The host adapter consults it synchronously
// inside its event dispatch, so implementations must not block.
type Reactor interface {
	React(WindowEvent) Reaction
}

// Guard enforces the window invariants. Stateless: every occurrence of an
// event fires its rule again, with no retry budget or debounce.
type Guard struct {
	logger *zap.Logger
}

// NewGuard creates the window lifecycle guard.
func NewGuard(logger *zap.Logger) *Guard {
	return &Guard{logger: logger}
}

// React returns the reaction for one event.
func (g *Guard) React(ev WindowEvent) Reaction {
	switch ev.Kind {
	case CloseRequested:
		g.logger.Debug("close request vetoed")
		return VetoClose
	case FocusLost:
		g.logger.Debug("focus lost, requesting refocus")
		return Refocus
	}
	return None
}
