package collector

import (
	"context"
	"strings"

	"github.com/xpec-project/xpec/internal/hw"
	"github.com/xpec-project/xpec/internal/probe"
)

// collectMemory merges DIMM lists across adapters. The highest-priority
// adapter that enumerates anything establishes the module list; later
// adapters may only fill fields still unknown on modules they can
// identify. Unmatched modules from lower-priority adapters are dropped —
// a high-priority source being authoritative but sparse on one field must
// not grow phantom DIMMs.
func (c *Collector) collectMemory(ctx context.Context) []hw.MemoryModule {
	var merged []hw.MemoryModule
	for _, r := range c.collectAll(ctx) {
		incoming := r.facts.Memory
		if len(merged) == 0 {
			for _, m := range incoming {
				if m.CapacityBytes == 0 {
					continue
				}
				merged = append(merged, hw.MemoryModule{
					CapacityBytes: m.CapacityBytes,
					SpeedMTs:      m.SpeedMTs,
					Manufacturer:  m.Manufacturer,
					PartNumber:    m.PartNumber,
					SlotLabel:     m.SlotLabel,
				})
			}
			continue
		}
		for i := range merged {
			src, ok := matchModule(merged[i], incoming, len(merged), i)
			if !ok {
				continue
			}
			if merged[i].SpeedMTs == 0 {
				merged[i].SpeedMTs = src.SpeedMTs
			}
			merged[i].Manufacturer = firstNonEmpty(merged[i].Manufacturer, src.Manufacturer)
			merged[i].PartNumber = firstNonEmpty(merged[i].PartNumber, src.PartNumber)
			merged[i].SlotLabel = firstNonEmpty(merged[i].SlotLabel, src.SlotLabel)
		}
	}
	return merged
}

// matchModule finds the counterpart of a merged module in another
// adapter's list. The identity key is the slot label; when either side
// lacks labels the match falls back to ordinal position, but only when
// both adapters saw the same number of modules — anything looser risks
// welding data from different DIMMs together.
func matchModule(target hw.MemoryModule, incoming []probe.MemoryFacts, mergedLen, ordinal int) (probe.MemoryFacts, bool) {
	incomingLabeled := false
	for _, m := range incoming {
		if m.SlotLabel != "" {
			incomingLabeled = true
			break
		}
	}
	if target.SlotLabel != "" && incomingLabeled {
		for _, m := range incoming {
			if strings.EqualFold(strings.TrimSpace(m.SlotLabel), strings.TrimSpace(target.SlotLabel)) {
				return m, true
			}
		}
		return probe.MemoryFacts{}, false
	}
	if mergedLen == len(incoming) && ordinal < len(incoming) {
		return incoming[ordinal], true
	}
	return probe.MemoryFacts{}, false
}
