package display

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// capturePatterns are name stems of known screen-capture and recording
// tools, matched case-insensitively against the process name with its
// extension stripped. A pattern must cover the whole stem or stop at a
// non-letter (digit, space, dash), so "obs" reads obs64 and "OBS Studio"
// but not obsidian or jobs.
var capturePatterns = []string{
	"obs",
	"obs64",
	"sharex",
	"snagit",
	"camtasia",
	"camtasiastudio",
	"bandicam",
	"screenrec",
	"screenrecorder",
	"action",
	"fraps",
	"loom",
	"xsplit",
}

// RecorderScan lists running screen-capture tools. Like the monitor count,
// this is a queryable fact for the content layer, not an enforcement point.
type RecorderScan struct {
	logger *zap.Logger
}

// NewRecorderScan creates a capture-tool scanner.
func NewRecorderScan(logger *zap.Logger) *RecorderScan {
	return &RecorderScan{logger: logger}
}

// Running returns the names of capture tools currently running. Best
// effort: enumeration errors degrade to an empty result.
func (s *RecorderScan) Running() []string {
	procs, err := process.Processes()
	if err != nil {
		s.logger.Warn("process enumeration failed", zap.Error(err))
		return nil
	}

	seen := make(map[string]bool)
	var found []string
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue // process may have exited
		}
		if matchesCaptureTool(name) && !seen[name] {
			seen[name] = true
			found = append(found, name)
		}
	}

	sort.Strings(found)
	return found
}

// matchesCaptureTool reports whether a process name looks like a known
// screen-capture tool.
func matchesCaptureTool(name string) bool {
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	for _, pattern := range capturePatterns {
		if !strings.HasPrefix(stem, pattern) {
			continue
		}
		rest := stem[len(pattern):]
		if rest == "" || rest[0] < 'a' || rest[0] > 'z' {
			return true
		}
	}
	return false
}
