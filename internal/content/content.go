// Package content carries the script payload injected into the rendered
// surface. It mirrors a subset of the native input guard's policy at the
// DOM-event level, as an independent enforcement layer for platforms where
// the native guard is absent and for events born inside the page itself.
package content

import _ "embed"

//go:embed lockdown.js
var script string

// Script returns the lockdown payload. It must be attached before the
// first navigation; attaching after content load would leave a window
// where the page registers its own handlers first.
func Script() string {
	return script
}
