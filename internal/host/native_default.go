//go:build !windows

package host

import (
	"errors"

	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/lifecycle"
)

// errNativeUnsupported marks native window control as unavailable. The
// window still runs; chrome and lifecycle interception degrade to the
// webview defaults and the content-script layer.
var errNativeUnsupported = errors.New("native window control not supported on this platform")

func applyChrome(hwnd uintptr, cfg config.WindowConfig) error {
	return errNativeUnsupported
}

func watchLifecycle(hwnd uintptr, guard lifecycle.Reactor) error {
	return errNativeUnsupported
}

func focusNative(hwnd uintptr) {}
