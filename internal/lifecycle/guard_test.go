package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGuard_CloseAlwaysVetoed(t *testing.T) {
	g := NewGuard(zap.NewNop())

	// The veto holds for any number of consecutive close requests.
	for i := 0; i < 25; i++ {
		assert.Equal(t, VetoClose, g.React(WindowEvent{Kind: CloseRequested}))
	}
}

func TestGuard_FocusLostAlwaysRefocuses(t *testing.T) {
	g := NewGuard(zap.NewNop())

	// One refocus per occurrence, no debouncing.
	refocusCount := 0
	for i := 0; i < 10; i++ {
		if g.React(WindowEvent{Kind: FocusLost}) == Refocus {
			refocusCount++
		}
	}
	assert.Equal(t, 10, refocusCount)
}

func TestGuard_FocusGainedIgnored(t *testing.T) {
	g := NewGuard(zap.NewNop())
	assert.Equal(t, None, g.React(WindowEvent{Kind: FocusGained}))
}

func TestGuard_UnknownEventIgnored(t *testing.T) {
	g := NewGuard(zap.NewNop())
	assert.Equal(t, None, g.React(WindowEvent{Kind: EventKind(99)}))
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "close-requested", CloseRequested.String())
	assert.Equal(t, "focus-lost", FocusLost.String())
	assert.Equal(t, "focus-gained", FocusGained.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
