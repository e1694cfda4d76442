package guard

import "errors"

// ErrNotSupported indicates the platform exposes no system-wide input
// primitive. Callers treat it as a degraded-but-running condition.
var ErrNotSupported = errors.New("global input interception not supported on this platform")

// Hook is the capability interface over the system-wide keyboard
// interception. Exactly one hook is installed per process while lockdown is
// active; its native handle never leaves the installing thread.
type Hook interface {
	// Install starts the interception on a dedicated thread and reports
	// the installation outcome. A failed install is permanent for the
	// process lifetime; there are no retries.
	Install() error

	// Active reports whether interception is currently in place.
	Active() bool
}

// Valve is the single authorized bypass: one fixed chord
// (Ctrl+Alt+Shift+Q) that terminates the process with a success status.
// It is registered only when the merged policy permits it.
type Valve interface {
	// Register binds the chord system-wide. Returns ErrNotSupported where
	// global hotkeys are unavailable.
	Register() error
}

// Supported reports whether this platform provides low-level keyboard
// interception at all.
func Supported() bool {
	return hookSupported
}
