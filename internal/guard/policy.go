// Package guard suppresses the system-wide key combinations that would let
// a user escape, inspect, or exfiltrate the lockdown window. It carries the
// suppression policy, the low-level keyboard interception that enforces it,
// and the operator escape valve.
package guard

import (
	"github.com/hashicorp/go-set/v2"
)

// Decision is the per-event verdict of the key policy.
type Decision int

const (
	// Forward passes the event unchanged to the next handler in the chain.
	Forward Decision = iota
	// Suppress consumes the event before any application observes it.
	Suppress
)

func (d Decision) String() string {
	if d == Suppress {
		return "suppress"
	}
	return "forward"
}

// Virtual-key codes for the denylisted keys. These are Windows VK_* values;
// the policy speaks this vocabulary on every platform so it stays testable
// where no interception exists.
const (
	KeyTab         uint32 = 0x09
	KeyEscape      uint32 = 0x1B
	KeyPrintScreen uint32 = 0x2C
	KeyC           uint32 = 0x43
	KeyP           uint32 = 0x50
	KeyQ           uint32 = 0x51
	KeyV           uint32 = 0x56
	KeyLeftMeta    uint32 = 0x5B
	KeyRightMeta   uint32 = 0x5C
	KeyF4          uint32 = 0x73
	KeyF12         uint32 = 0x7B
)

// KeyEvent is one physical key transition as seen by the interception layer.
type KeyEvent struct {
	Code    uint32
	Alt     bool
	Ctrl    bool
	KeyDown bool
}

// KeyPolicy is the fixed denylist evaluated per key-down event. It is
// immutable after construction and safe to read from the hook thread.
type KeyPolicy struct {
	bareKeys *set.Set[uint32] // suppressed regardless of modifiers
	altKeys  *set.Set[uint32] // suppressed when Alt is held
	ctrlKeys *set.Set[uint32] // suppressed when Ctrl is held
}

// NewKeyPolicy returns the lockdown denylist: task switching and window
// close (Alt+Tab/Escape/F4), desktop switchers (meta keys), screen capture,
// devtools (F12), and clipboard/print (Ctrl+C/V/P).
func NewKeyPolicy() *KeyPolicy {
	return &KeyPolicy{
		bareKeys: set.From([]uint32{KeyLeftMeta, KeyRightMeta, KeyPrintScreen, KeyF12}),
		altKeys:  set.From([]uint32{KeyTab, KeyEscape, KeyF4}),
		ctrlKeys: set.From([]uint32{KeyC, KeyV, KeyP}),
	}
}

// Decide returns the verdict for one event. Only key-down transitions are
// ever suppressed; anything ambiguous forwards, since a missed suppression
// only means a shortcut additionally still works.
func (p *KeyPolicy) Decide(ev KeyEvent) Decision {
	if !ev.KeyDown {
		return Forward
	}
	switch {
	case p.bareKeys.Contains(ev.Code):
		return Suppress
	case ev.Alt && p.altKeys.Contains(ev.Code):
		return Suppress
	case ev.Ctrl && p.ctrlKeys.Contains(ev.Code):
		return Suppress
	}
	return Forward
}
