//go:build windows

package guard

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const hookSupported = true

const (
	whKeyboardLL = 13

	wmKeyDown    = 0x0100
	wmSysKeyDown = 0x0104

	// KBDLLHOOKSTRUCT flag: the Alt key is held for this event.
	llkhfAltDown = 0x20

	vkControl = 0x11
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procRegisterHotKey      = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey    = user32.NewProc("UnregisterHotKey")
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VKCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// winMsg mirrors MSG.
type winMsg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// windowsHook owns the WH_KEYBOARD_LL handle. The handle is created and
// released on the same dedicated thread and is referenced nowhere else.
type windowsHook struct {
	policy *KeyPolicy
	logger *zap.Logger
	active atomic.Bool
}

// NewHook returns the Windows low-level keyboard interception.
func NewHook(policy *KeyPolicy, logger *zap.Logger) Hook {
	return &windowsHook{policy: policy, logger: logger}
}

func (h *windowsHook) Active() bool {
	return h.active.Load()
}

func (h *windowsHook) Install() error {
	errc := make(chan error, 1)
	go h.run(errc)
	return <-errc
}

// run is the hook thread: install the interception, pump messages for the
// process lifetime, and release the handle on any exit path. There is no
// cooperative stop; the hook outlives the window and exits with the process.
func (h *windowsHook) run(errc chan<- error) {
	runtime.LockOSThread()

	callback := windows.NewCallback(h.intercept)
	handle, _, callErr := procSetWindowsHookEx.Call(whKeyboardLL, callback, 0, 0)
	if handle == 0 {
		errc <- fmt.Errorf("install keyboard interception: %w", callErr)
		return
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(handle)
		h.active.Store(false)
	}()

	h.active.Store(true)
	errc <- nil
	h.logger.Info("global input guard installed")

	// WH_KEYBOARD_LL requires a message loop on the installing thread to
	// keep the interception alive.
	var msg winMsg
	for {
		ret, _, callErr := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if pumpDone(ret, callErr, h.logger) {
			return
		}
	}
}

// pumpDone classifies a GetMessage return. 0 is WM_QUIT; -1 is a failure
// that ends the pump and with it the interception, which must be logged or
// a dead guard is undiagnosable.
func pumpDone(ret uintptr, callErr error, logger *zap.Logger) bool {
	switch int32(ret) {
	case 0:
		return true
	case -1:
		logger.Error("message loop failed, interception lost", zap.Error(callErr))
		return true
	}
	return false
}

// intercept is the WH_KEYBOARD_LL callback. The OS serializes calls, so one
// event is fully decided before the next is seen. It must never unwind into
// the OS dispatcher: any internal fault degrades to forwarding the event.
func (h *windowsHook) intercept(code, wparam, lparam uintptr) uintptr {
	decision := Forward

	func() {
		defer func() {
			if r := recover(); r != nil {
				decision = Forward
				h.logger.Error("keyboard interception fault, forwarding event",
					zap.Any("panic", r))
			}
		}()

		// code < 0 means the event is not for us per hook contract.
		if int32(code) < 0 || lparam == 0 {
			return
		}

		kb := (*kbdllHookStruct)(unsafe.Pointer(lparam))
		decision = h.policy.Decide(KeyEvent{
			Code:    kb.VKCode,
			Alt:     kb.Flags&llkhfAltDown != 0,
			Ctrl:    ctrlHeld(),
			KeyDown: wparam == wmKeyDown || wparam == wmSysKeyDown,
		})
	}()

	if decision == Suppress {
		return 1
	}
	next, _, _ := procCallNextHookEx.Call(0, code, wparam, lparam)
	return next
}

func ctrlHeld() bool {
	state, _, _ := procGetAsyncKeyState.Call(vkControl)
	return uint16(state)&0x8000 != 0
}
