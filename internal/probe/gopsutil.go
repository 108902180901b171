package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// portableAdapters returns the adapters that are eligible on any platform.
func portableAdapters() []Adapter {
	return []Adapter{
		newGopsutilCPUAdapter(),
		newNvidiaSMIAdapter(),
	}
}

// newGopsutilCPUAdapter reads processor model and counts through gopsutil,
// which consults /proc/cpuinfo, sysctl, or the registry as appropriate.
// It is the primary CPU source everywhere except Windows, where the WMI
// adapter outranks it for its reliable MaxClockSpeed.
func newGopsutilCPUAdapter() Adapter {
	return newAdapter("cpu-gopsutil", CategoryCPU, nil, 20, func(ctx context.Context) (*Facts, error) {
		infos, err := cpu.InfoWithContext(ctx)
		if err != nil {
			return nil, AsFailure(err)
		}
		if len(infos) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no cpu info records")}
		}

		facts := &CPUFacts{
			Model:        infos[0].ModelName,
			BaseClockMHz: infos[0].Mhz,
		}
		if n, err := cpu.CountsWithContext(ctx, false); err == nil {
			facts.Cores = n
		}
		if n, err := cpu.CountsWithContext(ctx, true); err == nil {
			facts.Threads = n
		}
		return &Facts{CPU: facts}, nil
	})
}
