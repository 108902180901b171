package probe

import (
	"context"
	"fmt"
	"strings"
)

// newLspciAdapter enumerates display-class PCI devices. lspci knows
// nothing about VRAM; the vendor adapter fills that in afterwards.
func newLspciAdapter() Adapter {
	return newAdapter("gpu-lspci", CategoryGPU, []string{"linux"}, 30, func(ctx context.Context) (*Facts, error) {
		out, err := runCommand(ctx, "lspci", "-mm")
		if err != nil {
			return nil, err
		}
		gpus, err := parseLspci(string(out))
		if err != nil {
			return nil, err
		}
		return &Facts{GPUs: gpus}, nil
	})
}

// parseLspci extracts VGA/3D/Display controllers from `lspci -mm` output,
// where each line is a slot followed by quoted class, vendor, and device
// fields.
func parseLspci(out string) ([]GPUFacts, error) {
	var gpus []GPUFacts
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := splitLspciLine(line)
		if len(fields) < 4 {
			continue
		}
		class := strings.ToLower(fields[1])
		if !strings.Contains(class, "vga") && !strings.Contains(class, "3d") && !strings.Contains(class, "display") {
			continue
		}
		gpus = append(gpus, GPUFacts{
			Name:   fields[3],
			Vendor: shortPCIVendor(fields[2]),
			BusID:  NormalizeBusID(fields[0]),
		})
	}
	if len(gpus) == 0 {
		return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no display controllers in lspci output")}
	}
	return gpus, nil
}

// splitLspciLine tokenizes an lspci -mm line, honoring double quotes.
func splitLspciLine(line string) []string {
	var fields []string
	var b strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if b.Len() > 0 {
				fields = append(fields, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		fields = append(fields, b.String())
	}
	return fields
}

func shortPCIVendor(vendor string) string {
	u := strings.ToUpper(vendor)
	switch {
	case strings.Contains(u, "NVIDIA"):
		return "NVIDIA"
	case strings.Contains(u, "ADVANCED MICRO DEVICES"), strings.Contains(u, "AMD"), strings.Contains(u, "ATI"):
		return "AMD"
	case strings.Contains(u, "INTEL"):
		return "Intel"
	}
	return strings.TrimSpace(vendor)
}
