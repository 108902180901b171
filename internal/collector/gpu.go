package collector

import (
	"context"

	"github.com/xpec-project/xpec/internal/hw"
	"github.com/xpec-project/xpec/internal/probe"
)

// collectGPU merges graphics devices across adapters. Two records are the
// same physical device when their PCI locations match or, failing that,
// their normalized names compare equal. VRAM follows the fill-only rule
// with one carve-out: a vendor-specific provider's VRAM replaces a
// driver-reported value, since driver fields like AdapterRAM saturate.
//
// Identity matching runs only across adapters, never within one: a single
// adapter enumerating two identical cards (same name, no bus ids) must
// yield two entries. Each prior entry pairs with at most one record per
// adapter, so twin cards match one-to-one.
func (c *Collector) collectGPU(ctx context.Context) []hw.GPUInfo {
	type entry struct {
		hw.GPUInfo
		vendorVRAM bool
	}
	var merged []entry

	for _, r := range c.collectAll(ctx) {
		name := r.adapter.Name()
		base := len(merged)
		enumeratedBefore := base > 0
		matched := make([]bool, base)

		for _, g := range r.facts.GPUs {
			idx := -1
			for i := 0; i < base; i++ {
				if !matched[i] && sameGPU(merged[i].GPUInfo, g) {
					idx = i
					matched[i] = true
					break
				}
			}

			if idx < 0 {
				if enumeratedBefore {
					c.diary.Verbose(string(probe.CategoryGPU),
						"%s: %q unmatched, dropped (higher-priority source already enumerated)", name, g.Name)
					continue
				}
				e := entry{GPUInfo: hw.GPUInfo{
					Name:   g.Name,
					Vendor: g.Vendor,
					BusID:  g.BusID,
				}}
				if g.VRAMBytes > 0 {
					e.VRAMBytes = g.VRAMBytes
					e.VRAMSource = name
					e.vendorVRAM = g.VendorVRAM
				}
				merged = append(merged, e)
				c.diary.Verbose(string(probe.CategoryGPU), "%s: %q enumerated, vram=%s", name, g.Name, hw.FormatGB(g.VRAMBytes))
				continue
			}

			e := &merged[idx]
			e.Vendor = firstNonEmpty(e.Vendor, g.Vendor)
			e.BusID = firstNonEmpty(e.BusID, g.BusID)
			if g.VRAMBytes > 0 && (e.VRAMBytes == 0 || (g.VendorVRAM && !e.vendorVRAM)) {
				e.VRAMBytes = g.VRAMBytes
				e.VRAMSource = name
				e.vendorVRAM = g.VendorVRAM
				c.diary.Verbose(string(probe.CategoryGPU), "%s: %q vram=%s chosen", name, e.Name, hw.FormatGB(g.VRAMBytes))
			} else {
				c.diary.Verbose(string(probe.CategoryGPU), "%s: %q matched, vram kept from %s", name, e.Name, e.VRAMSource)
			}
		}
	}

	gpus := make([]hw.GPUInfo, len(merged))
	for i, e := range merged {
		gpus[i] = e.GPUInfo
	}
	return gpus
}

func sameGPU(a hw.GPUInfo, b probe.GPUFacts) bool {
	if a.BusID != "" && b.BusID != "" {
		return a.BusID == b.BusID
	}
	return hw.NormalizeName(a.Name) == hw.NormalizeName(b.Name)
}
