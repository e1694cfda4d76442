//go:build !windows

package guard

import "go.uber.org/zap"

// stubValve stands in where global hotkeys are unavailable.
type stubValve struct{}

// NewValve returns the no-op escape valve for unsupported platforms.
func NewValve(logger *zap.Logger, exit func(int)) Valve {
	return stubValve{}
}

func (stubValve) Register() error {
	return ErrNotSupported
}
