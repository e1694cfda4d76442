//go:build windows

package guard

import (
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
)

const (
	wmHotkey = 0x0312

	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modNoRepeat = 0x4000

	valveHotkeyID = 1
)

// windowsValve binds the escape chord through RegisterHotKey. The hotkey,
// like the hook, needs a message loop on its registering thread.
type windowsValve struct {
	logger *zap.Logger
	exit   func(int)
}

// NewValve returns the Windows escape valve. exit is invoked with status 0
// on the chord's key-down transition.
func NewValve(logger *zap.Logger, exit func(int)) Valve {
	return &windowsValve{logger: logger, exit: exit}
}

func (v *windowsValve) Register() error {
	errc := make(chan error, 1)
	go v.run(errc)
	return <-errc
}

func (v *windowsValve) run(errc chan<- error) {
	runtime.LockOSThread()

	// MOD_NOREPEAT limits delivery to the key-down transition.
	mods := uintptr(modControl | modAlt | modShift | modNoRepeat)
	ret, _, callErr := procRegisterHotKey.Call(0, valveHotkeyID, mods, uintptr(KeyQ))
	if ret == 0 {
		errc <- fmt.Errorf("register escape valve chord: %w", callErr)
		return
	}
	defer procUnregisterHotKey.Call(0, valveHotkeyID)

	errc <- nil

	var msg winMsg
	for {
		ret, _, callErr := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if pumpDone(ret, callErr, v.logger) {
			return
		}
		if msg.Message == wmHotkey && msg.WParam == valveHotkeyID {
			v.logger.Info("escape valve triggered, terminating")
			v.exit(0)
		}
	}
}
