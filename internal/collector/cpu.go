package collector

import (
	"context"

	"github.com/xpec-project/xpec/internal/hw"
)

// collectCPU consolidates the processor record from the first adapter
// that answers. CPU is a singleton category: one provider's record is
// internally consistent, so mixing fields across providers buys nothing.
func (c *Collector) collectCPU(ctx context.Context) hw.CPUInfo {
	facts := c.collectFirst(ctx)
	if facts == nil || facts.CPU == nil {
		return hw.CPUInfo{}
	}

	info := hw.CPUInfo{
		Cores:        facts.CPU.Cores,
		Threads:      facts.CPU.Threads,
		BaseClockMHz: facts.CPU.BaseClockMHz,
		MaxClockMHz:  facts.CPU.MaxClockMHz,
	}
	if facts.CPU.Model != "" {
		info.Model = hw.CleanCPUModel(facts.CPU.Model)
	}
	// Logical count can never be below the physical count; a provider
	// reporting otherwise has swapped or truncated a field.
	if info.Cores > 0 && info.Threads > 0 && info.Threads < info.Cores {
		info.Threads = info.Cores
	}
	return info
}
