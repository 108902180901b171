package collector

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sync/errgroup"

	"github.com/xpec-project/xpec/internal/diag"
	"github.com/xpec-project/xpec/internal/hw"
	"github.com/xpec-project/xpec/internal/probe"
)

// Assembler runs every category collector and composes the immutable
// specification snapshot. Categories are independent, so their collectors
// run in parallel; within a category adapters stay strictly sequential
// because later merge decisions depend on which fields are already
// populated.
type Assembler struct {
	Adapters []probe.Adapter
	Switches diag.Switches

	// GOOS, Now, and NewID exist so tests can pin platform, clock, and
	// snapshot identity. NewAssembler fills in the real ones.
	GOOS  string
	Now   func() time.Time
	NewID func() string
}

// NewAssembler returns an assembler over the given adapters.
func NewAssembler(adapters []probe.Adapter, sw diag.Switches) *Assembler {
	return &Assembler{
		Adapters: adapters,
		Switches: sw,
		GOOS:     runtime.GOOS,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// Snapshot collects all categories and returns the composed snapshot.
// It cannot fail: a category whose adapters all failed contributes empty
// or unknown values, with the reasons in Diagnostics.
func (a *Assembler) Snapshot(ctx context.Context) *hw.Snapshot {
	diary := diag.NewDiary()

	snap := &hw.Snapshot{
		ID: a.NewID(),
		Host: hw.HostInfo{
			Architecture: runtime.GOARCH,
			CollectedAt:  a.Now().UTC(),
		},
	}
	a.fillHost(ctx, &snap.Host)

	// One result slot per category, written once by its collector.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.CPU = newCollector(probe.CategoryCPU, a.Adapters, a.GOOS, diary).collectCPU(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Memory = newCollector(probe.CategoryMemory, a.Adapters, a.GOOS, diary).collectMemory(gctx)
		return nil
	})
	g.Go(func() error {
		snap.GPUs = newCollector(probe.CategoryGPU, a.Adapters, a.GOOS, diary).collectGPU(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Storage = newCollector(probe.CategoryStorage, a.Adapters, a.GOOS, diary).collectStorage(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Host.Board = newCollector(probe.CategoryBoard, a.Adapters, a.GOOS, diary).collectBoard(gctx)
		return nil
	})
	_ = g.Wait() // collectors never return errors

	snap.Diagnostics = diary.Notes(a.Switches)
	return snap
}

// fillHost captures OS metadata directly; host identity is not a
// competing-source problem, so it bypasses the adapter machinery.
func (a *Assembler) fillHost(ctx context.Context, h *hw.HostInfo) {
	h.OS = a.GOOS
	if info, err := host.InfoWithContext(ctx); err == nil {
		h.Hostname = info.Hostname
		if info.Platform != "" {
			h.OS = info.Platform
		}
		h.OSVersion = info.PlatformVersion
	}
	if h.Hostname == "" {
		h.Hostname, _ = os.Hostname()
	}
}
