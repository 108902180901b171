// Package probe contains the source adapters: one wrapper per underlying
// hardware data provider. Each adapter serves exactly one category, is
// eligible on a declared set of platforms, and either returns a
// provider-shaped Facts value or fails with a typed Failure. Adapters
// never panic across the boundary and never block past their timeout.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/xpec-project/xpec/internal/hw"
)

// Category names one hardware category served by an adapter.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryMemory  Category = "memory"
	CategoryGPU     Category = "gpu"
	CategoryStorage Category = "storage"
	CategoryBoard   Category = "board"
)

// Categories lists every category in assembly order.
var Categories = []Category{CategoryCPU, CategoryMemory, CategoryGPU, CategoryStorage, CategoryBoard}

// defaultTimeout bounds a single adapter invocation. External query tools
// that hang are killed rather than stalling the run.
const defaultTimeout = 3 * time.Second

// Adapter is a single-provider query wrapper. Priority orders adapters
// within a category, highest first; priority reflects reliability of the
// provider, not richness of its output.
type Adapter interface {
	Name() string
	Category() Category
	// Platforms lists the GOOS values the adapter can run on. Empty
	// means any platform.
	Platforms() []string
	Priority() int
	Probe(ctx context.Context) (*Facts, error)
}

// Facts is the provider-shaped result of one adapter invocation. Only the
// fields belonging to the adapter's category are populated.
type Facts struct {
	CPU     *CPUFacts
	Memory  []MemoryFacts
	GPUs    []GPUFacts
	Storage []StorageFacts
	Board   *BoardFacts
}

// CPUFacts is a raw processor record.
type CPUFacts struct {
	Model        string
	Cores        int
	Threads      int
	BaseClockMHz float64
	MaxClockMHz  float64
}

// MemoryFacts is a raw DIMM record.
type MemoryFacts struct {
	CapacityBytes uint64
	// SpeedMTs is the configured speed when the provider distinguishes
	// it, otherwise the rated speed.
	SpeedMTs     uint32
	Manufacturer string
	PartNumber   string
	SlotLabel    string
}

// GPUFacts is a raw graphics device record. VendorVRAM marks the value as
// coming from a vendor-specific provider, which outranks driver-reported
// VRAM regardless of adapter priority.
type GPUFacts struct {
	Name       string
	Vendor     string
	VRAMBytes  uint64
	VendorVRAM bool
	BusID      string
}

// StorageFacts is a raw disk record. Media is set only when the provider
// states the media type directly; NVMe is set only on an unambiguous NVMe
// transport signal.
type StorageFacts struct {
	Model     string
	SizeBytes uint64
	Media     hw.MediaType
	NVMe      bool
	Bus       string
}

// BoardFacts is a raw motherboard record.
type BoardFacts struct {
	Manufacturer string
	Product      string
}

// adapter is the concrete Adapter used by every probe in this package.
// The probe function runs under the adapter's timeout; a deadline hit is
// converted to a Timeout failure and the late result is discarded.
type adapter struct {
	name      string
	category  Category
	platforms []string
	priority  int
	timeout   time.Duration
	probe     func(ctx context.Context) (*Facts, error)
}

func newAdapter(name string, cat Category, platforms []string, priority int, probe func(ctx context.Context) (*Facts, error)) Adapter {
	return &adapter{
		name:      name,
		category:  cat,
		platforms: platforms,
		priority:  priority,
		timeout:   defaultTimeout,
		probe:     probe,
	}
}

func (a *adapter) Name() string        { return a.name }
func (a *adapter) Category() Category  { return a.category }
func (a *adapter) Platforms() []string { return a.platforms }
func (a *adapter) Priority() int       { return a.priority }

func (a *adapter) Probe(ctx context.Context) (facts *Facts, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		facts *Facts
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{nil, &Failure{Kind: ParseError, Err: fmt.Errorf("panic: %v", r)}}
			}
		}()
		f, err := a.probe(ctx)
		done <- result{f, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, AsFailure(r.err)
		}
		if r.facts == nil || r.facts.empty() {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("%s returned nothing usable", a.name)}
		}
		return r.facts, nil
	case <-ctx.Done():
		return nil, &Failure{Kind: Timeout, Err: fmt.Errorf("%s exceeded %s", a.name, a.timeout)}
	}
}

func (f *Facts) empty() bool {
	return f.CPU == nil && len(f.Memory) == 0 && len(f.GPUs) == 0 && len(f.Storage) == 0 && f.Board == nil
}

// Eligible reports whether the adapter may run on the given GOOS.
func Eligible(a Adapter, goos string) bool {
	ps := a.Platforms()
	if len(ps) == 0 {
		return true
	}
	for _, p := range ps {
		if p == goos {
			return true
		}
	}
	return false
}

// DefaultAdapters returns every adapter compiled into this build, portable
// ones first. Ordering here is irrelevant; collectors sort by priority.
func DefaultAdapters() []Adapter {
	return append(portableAdapters(), platformAdapters()...)
}
