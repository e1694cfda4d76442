// Package host wraps the native window/webview surface that the lockdown
// guards attach to. The windowing layer is an external collaborator; the
// rest of the system talks to it only through the Window boundary.
package host

// Window is the boundary to the windowing/webview host. Implementations
// guarantee that calls arriving from foreign threads are marshaled to the
// UI thread internally, so guard callbacks may invoke these directly.
type Window interface {
	// Run enters the UI loop and blocks until Terminate.
	Run()

	// Terminate requests a graceful exit of the UI loop.
	Terminate()

	// Dispatch schedules f on the UI thread.
	Dispatch(f func())

	// Navigate loads a URL in place; it never opens a new window.
	Navigate(url string)

	// Eval runs script in the rendered page.
	Eval(js string)

	// InitScript registers script that runs before any document script,
	// on the initial load and on every subsequent navigation.
	InitScript(js string)

	// Bind exposes a Go function to the rendered content as a global.
	Bind(name string, fn interface{}) error

	// Focus asks the OS to foreground the window.
	Focus()

	// Handle returns the native top-level window handle, or 0 when the
	// platform exposes none.
	Handle() uintptr
}
