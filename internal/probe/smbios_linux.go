//go:build linux

package probe

import (
	"context"
	"fmt"

	"github.com/siderolabs/go-smbios/smbios"

	"github.com/xpec-project/xpec/internal/hw"
)

// newSMBIOSMemoryAdapter decodes DMI type 17 records straight from the
// firmware tables. Reading /sys/firmware/dmi/tables normally requires
// root; without it the adapter fails PermissionDenied and the dmidecode
// adapter gets its turn.
func newSMBIOSMemoryAdapter() Adapter {
	return newAdapter("memory-smbios", CategoryMemory, []string{"linux"}, 30, func(ctx context.Context) (*Facts, error) {
		s, err := smbios.New()
		if err != nil {
			return nil, AsFailure(err)
		}

		var modules []MemoryFacts
		for _, d := range s.MemoryDevices {
			capacity := memoryDeviceBytes(uint16(d.Size), uint32(d.ExtendedSize))
			if capacity == 0 {
				continue // empty slot
			}
			m := MemoryFacts{
				CapacityBytes: capacity,
				SpeedMTs:      uint32(d.ConfiguredMemorySpeed),
				SlotLabel:     d.DeviceLocator,
			}
			if m.SpeedMTs == 0 {
				m.SpeedMTs = uint32(d.Speed)
			}
			if !hw.IsPlaceholder(d.Manufacturer) {
				m.Manufacturer = d.Manufacturer
			}
			if !hw.IsPlaceholder(d.PartNumber) {
				m.PartNumber = d.PartNumber
			}
			modules = append(modules, m)
		}
		if len(modules) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no populated memory devices in smbios tables")}
		}
		return &Facts{Memory: modules}, nil
	})
}

// memoryDeviceBytes decodes the SMBIOS type 17 Size field: 0 or 0xFFFF
// mean empty/unknown, 0x7FFF defers to ExtendedSize (MiB), bit 15 flips
// the unit from MiB to KiB.
func memoryDeviceBytes(size uint16, extended uint32) uint64 {
	switch size {
	case 0, 0xFFFF:
		return 0
	case 0x7FFF:
		return uint64(extended) << 20
	}
	if size&0x8000 != 0 {
		return uint64(size&0x7FFF) << 10
	}
	return uint64(size) << 20
}

// newSMBIOSBoardAdapter reads the baseboard record from the firmware
// tables. Fallback behind the sysfs adapter.
func newSMBIOSBoardAdapter() Adapter {
	return newAdapter("board-smbios", CategoryBoard, []string{"linux"}, 20, func(ctx context.Context) (*Facts, error) {
		s, err := smbios.New()
		if err != nil {
			return nil, AsFailure(err)
		}
		manufacturer := s.BaseboardInformation.Manufacturer
		product := s.BaseboardInformation.Product
		if hw.IsPlaceholder(manufacturer) && hw.IsPlaceholder(product) {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("baseboard record is placeholders")}
		}
		return &Facts{Board: &BoardFacts{Manufacturer: manufacturer, Product: product}}, nil
	})
}
