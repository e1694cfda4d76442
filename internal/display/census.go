// Package display answers questions about the machine's display and
// capture environment. Everything here is observability for the content
// layer; the subsystem takes no enforcement action on these facts.
package display

// Census counts attached display devices.
type Census interface {
	// Count returns the number of attached displays. Platforms without
	// enumeration support report the sentinel 1 (single monitor, nothing
	// to flag).
	Count() int

	// Multiple reports whether more than one display is attached.
	Multiple() bool
}
