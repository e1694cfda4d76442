//go:build windows

package host

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/lifecycle"
)

const (
	gwlStyle    = -16
	gwlExStyle  = -20
	gwlpWndProc = -4

	wsPopup       = 0x80000000
	wsVisible     = 0x10000000
	wsCaption     = 0x00C00000
	wsThickFrame  = 0x00040000
	wsSysMenu     = 0x00080000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000

	wsExTopmost    = 0x00000008
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpFrameChanged = 0x0020
	swpShowWindow   = 0x0040

	smCxScreen = 0
	smCyScreen = 1

	wmClose    = 0x0010
	wmActivate = 0x0006
	waInactive = 0
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetWindowLongPtr    = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr    = user32.NewProc("SetWindowLongPtrW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procCallWindowProc      = user32.NewProc("CallWindowProcW")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
)

// hwndTopmost is (HWND)-1, the topmost insert-after sentinel.
var hwndTopmost = ^uintptr(0)

// winIndex converts a negative Get/SetWindowLongPtr index to the uintptr
// the calling convention expects.
func winIndex(i int) uintptr {
	return uintptr(uint32(int32(i)))
}

// applyChrome strips native decorations and applies the configured window
// flags on the Win32 handle: undecorated popup, non-resizable, no
// minimize/maximize/close affordances, optional topmost, taskbar hiding,
// and screen-bounds geometry for fullscreen.
func applyChrome(hwnd uintptr, cfg config.WindowConfig) error {
	if hwnd == 0 {
		return fmt.Errorf("no native window handle")
	}

	style, _, _ := procGetWindowLongPtr.Call(hwnd, winIndex(gwlStyle))
	style &^= uintptr(wsCaption | wsThickFrame | wsSysMenu | wsMinimizeBox | wsMaximizeBox)
	style |= uintptr(wsPopup | wsVisible)
	procSetWindowLongPtr.Call(hwnd, winIndex(gwlStyle), style)

	if cfg.SkipTaskbar {
		ex, _, _ := procGetWindowLongPtr.Call(hwnd, winIndex(gwlExStyle))
		ex &^= uintptr(wsExAppWindow)
		ex |= uintptr(wsExToolWindow)
		procSetWindowLongPtr.Call(hwnd, winIndex(gwlExStyle), ex)
	}

	insertAfter := uintptr(0)
	flags := uintptr(swpFrameChanged | swpShowWindow)
	if cfg.AlwaysOnTop {
		insertAfter = hwndTopmost
	} else {
		flags |= swpNoZOrder
	}

	var width, height uintptr
	if cfg.Fullscreen {
		width = uintptr(getMetric(smCxScreen))
		height = uintptr(getMetric(smCyScreen))
	} else {
		flags |= swpNoMove | swpNoSize
	}

	procSetWindowPos.Call(hwnd, insertAfter, 0, 0, width, height, flags)
	return nil
}

func getMetric(index int) int {
	n, _, _ := procGetSystemMetrics.Call(uintptr(index))
	return int(int32(n))
}

// watchLifecycle subclasses the window procedure so close requests and
// focus transitions are answered by the lifecycle guard before the default
// handler sees them. The subclass happens on the UI thread before the
// message loop starts pumping.
func watchLifecycle(hwnd uintptr, guard lifecycle.Reactor) error {
	if hwnd == 0 {
		return fmt.Errorf("no native window handle")
	}

	var prevProc uintptr

	// The callback runs inside OS window dispatch and must never unwind
	// past it; a fault falls through to the previous procedure.
	proc := windows.NewCallback(func(h, msg, wparam, lparam uintptr) uintptr {
		vetoed := false
		func() {
			defer func() { _ = recover() }()

			switch msg {
			case wmClose:
				if guard.React(lifecycle.WindowEvent{Kind: lifecycle.CloseRequested}) == lifecycle.VetoClose {
					vetoed = true
				}
			case wmActivate:
				if wparam&0xFFFF == waInactive {
					if guard.React(lifecycle.WindowEvent{Kind: lifecycle.FocusLost}) == lifecycle.Refocus {
						procSetForegroundWindow.Call(h)
					}
				} else {
					guard.React(lifecycle.WindowEvent{Kind: lifecycle.FocusGained})
				}
			}
		}()

		if vetoed {
			return 0
		}
		ret, _, _ := procCallWindowProc.Call(prevProc, h, msg, wparam, lparam)
		return ret
	})

	prevProc, _, _ = procSetWindowLongPtr.Call(hwnd, winIndex(gwlpWndProc), proc)
	if prevProc == 0 {
		return fmt.Errorf("window procedure subclass failed")
	}
	return nil
}

func focusNative(hwnd uintptr) {
	if hwnd != 0 {
		procSetForegroundWindow.Call(hwnd)
	}
}
