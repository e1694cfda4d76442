//go:build windows

package display

import "golang.org/x/sys/windows"

const smCMonitors = 80

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

type windowsCensus struct {
	metric func(index int) int
}

// NewCensus returns the Windows display census.
func NewCensus() Census {
	return &windowsCensus{metric: getSystemMetrics}
}

func getSystemMetrics(index int) int {
	n, _, _ := procGetSystemMetrics.Call(uintptr(index))
	return int(int32(n))
}

func (c *windowsCensus) Count() int {
	n := c.metric(smCMonitors)
	if n < 1 {
		// A failed metric query reads as a single display.
		return 1
	}
	return n
}

func (c *windowsCensus) Multiple() bool {
	return c.Count() > 1
}
