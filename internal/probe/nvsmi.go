package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// newNvidiaSMIAdapter queries nvidia-smi for NVIDIA GPUs. It is the
// vendor-specific VRAM source: its memory.total outranks driver-reported
// values even when a generic adapter enumerated the device first.
func newNvidiaSMIAdapter() Adapter {
	return newAdapter("gpu-nvidia-smi", CategoryGPU, nil, 20, func(ctx context.Context) (*Facts, error) {
		out, err := runCommand(ctx, "nvidia-smi",
			"--query-gpu=name,memory.total,pci.bus_id",
			"--format=csv,noheader,nounits")
		if err != nil {
			return nil, err
		}
		gpus, err := parseNvidiaSMI(string(out))
		if err != nil {
			return nil, err
		}
		return &Facts{GPUs: gpus}, nil
	})
}

// parseNvidiaSMI parses one "name, memory.total, pci.bus_id" line per
// device. memory.total is reported in MiB with nounits.
func parseNvidiaSMI(out string) ([]GPUFacts, error) {
	var gpus []GPUFacts
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return nil, parseFail(fmt.Errorf("unexpected nvidia-smi line %q", line))
		}

		g := GPUFacts{
			Name:       strings.TrimSpace(parts[0]),
			Vendor:     "NVIDIA",
			VendorVRAM: true,
		}
		if mib, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64); err == nil {
			g.VRAMBytes = mib * 1024 * 1024
		}
		if len(parts) >= 3 {
			g.BusID = NormalizeBusID(strings.TrimSpace(parts[2]))
		}
		gpus = append(gpus, g)
	}
	if len(gpus) == 0 {
		return nil, parseFail(fmt.Errorf("no devices in nvidia-smi output"))
	}
	return gpus, nil
}

// NormalizeBusID reduces a PCI location to lower-case bus:device.function
// form so that nvidia-smi ("00000000:01:00.0") and lspci ("01:00.0")
// identifiers compare equal.
func NormalizeBusID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	// Drop the PCI domain prefix when present.
	if parts := strings.Split(id, ":"); len(parts) == 3 {
		id = parts[1] + ":" + parts[2]
	}
	return id
}
