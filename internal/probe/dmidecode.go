package probe

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xpec-project/xpec/internal/hw"
)

// newDmidecodeMemoryAdapter shells out to dmidecode for DMI type 17
// (Memory Device) records. Usually requires root; a refusal surfaces as
// PermissionDenied and the collector moves on.
func newDmidecodeMemoryAdapter() Adapter {
	return newAdapter("memory-dmidecode", CategoryMemory, []string{"linux"}, 20, func(ctx context.Context) (*Facts, error) {
		out, err := runCommand(ctx, "dmidecode", "--type", "17")
		if err != nil {
			return nil, err
		}
		modules := parseDmidecodeMemory(string(out))
		if len(modules) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no populated memory devices")}
		}
		return &Facts{Memory: modules}, nil
	})
}

// parseDmidecodeMemory extracts populated DIMMs from `dmidecode --type 17`
// output. Devices reporting "No Module Installed" are empty slots.
func parseDmidecodeMemory(out string) []MemoryFacts {
	var modules []MemoryFacts
	var cur *MemoryFacts
	var rated uint32

	flush := func() {
		if cur != nil && cur.CapacityBytes > 0 {
			if cur.SpeedMTs == 0 {
				cur.SpeedMTs = rated
			}
			modules = append(modules, *cur)
		}
		cur, rated = nil, 0
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Handle ") && strings.Contains(line, "DMI type 17") {
			flush()
			cur = &MemoryFacts{}
			continue
		}
		if cur == nil {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Size":
			if !strings.Contains(value, "No Module Installed") {
				cur.CapacityBytes = parseDmiSize(value)
			}
		case "Speed":
			rated = parseDmiSpeed(value)
		case "Configured Memory Speed", "Configured Clock Speed":
			cur.SpeedMTs = parseDmiSpeed(value)
		case "Manufacturer":
			if !hw.IsPlaceholder(value) {
				cur.Manufacturer = value
			}
		case "Part Number":
			if !hw.IsPlaceholder(value) {
				cur.PartNumber = value
			}
		case "Locator":
			cur.SlotLabel = value
		}
	}
	flush()
	return modules
}

// parseDmiSize converts "16 GB" or "16384 MB" to bytes.
func parseDmiSize(s string) uint64 {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(fields[1]) {
	case "TB":
		return n << 40
	case "GB":
		return n << 30
	case "MB":
		return n << 20
	case "KB":
		return n << 10
	}
	return 0
}

// parseDmiSpeed converts "3200 MT/s" (or legacy "3200 MHz") to MT/s.
func parseDmiSpeed(s string) uint32 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
