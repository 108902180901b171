// Package diag implements the diagnostics side channel: a thread-safe
// diary that records which adapter produced which outcome. Collectors
// write to it unconditionally; whether the verbose detail surfaces in the
// final snapshot is decided once, at the end, by the enabled switches.
package diag

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Outcome strings recorded per adapter invocation.
const (
	OutcomeSucceeded = "succeeded"
)

// Failed composes a failed outcome with its reason.
func Failed(reason string) string { return "failed:" + reason }

// Skipped composes a skipped outcome with its reason.
func Skipped(reason string) string { return "skipped:" + reason }

// Switches controls which categories surface their verbose source detail.
// Outcome records are always surfaced regardless of switches.
type Switches struct {
	Board bool
	GPU   bool
}

// SwitchesFromEnv reads the debug environment variables. XPEC_DEBUG turns
// on both channels; XPEC_DEBUG_MOBO and XPEC_DEBUG_GPU turn on one each.
func SwitchesFromEnv() Switches {
	all := envTruthy("XPEC_DEBUG")
	return Switches{
		Board: all || envTruthy("XPEC_DEBUG_MOBO"),
		GPU:   all || envTruthy("XPEC_DEBUG_GPU"),
	}
}

func envTruthy(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Diary accumulates per-category notes. Safe for concurrent use by the
// category collectors running in parallel.
type Diary struct {
	mu       sync.Mutex
	outcomes map[string][]string
	verbose  map[string][]string
}

// NewDiary returns an empty diary.
func NewDiary() *Diary {
	return &Diary{
		outcomes: make(map[string][]string),
		verbose:  make(map[string][]string),
	}
}

// Record appends an (adapter, outcome) pair for a category.
func (d *Diary) Record(category, adapter, outcome string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outcomes[category] = append(d.outcomes[category], adapter+": "+outcome)
}

// Verbose appends a free-form source-detail line for a category. The
// append is unconditional and cheap; filtering happens in Notes.
func (d *Diary) Verbose(category, format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.verbose[category] = append(d.verbose[category], fmt.Sprintf(format, args...))
}

// Notes returns the diagnostics map for the snapshot: every recorded
// outcome, plus the verbose lines of categories whose switch is enabled.
func (d *Diary) Notes(sw Switches) map[string][]string {
	d.mu.Lock()
	defer d.mu.Unlock()

	notes := make(map[string][]string, len(d.outcomes))
	for cat, lines := range d.outcomes {
		notes[cat] = append([]string(nil), lines...)
	}
	for cat, lines := range d.verbose {
		if !verboseEnabled(cat, sw) {
			continue
		}
		notes[cat] = append(notes[cat], lines...)
	}
	return notes
}

func verboseEnabled(category string, sw Switches) bool {
	switch category {
	case "board":
		return sw.Board
	case "gpu":
		return sw.GPU
	}
	return false
}
