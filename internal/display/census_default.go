//go:build !windows

package display

// sentinelCount is reported on platforms without display enumeration.
const sentinelCount = 1

type stubCensus struct{}

// NewCensus returns the fixed single-display census for platforms without
// enumeration support.
func NewCensus() Census {
	return stubCensus{}
}

func (stubCensus) Count() int {
	return sentinelCount
}

func (stubCensus) Multiple() bool {
	return false
}
