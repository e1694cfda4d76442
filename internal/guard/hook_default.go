//go:build !windows

package guard

import "go.uber.org/zap"

const hookSupported = false

// stubHook stands in where the OS exposes no system-wide keyboard
// interception. The content-script layer is the only input-suppression
// surface on such platforms.
type stubHook struct{}

// NewHook returns the no-op interception for unsupported platforms.
func NewHook(policy *KeyPolicy, logger *zap.Logger) Hook {
	return stubHook{}
}

func (stubHook) Install() error {
	return ErrNotSupported
}

func (stubHook) Active() bool {
	return false
}
