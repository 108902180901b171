//go:build windows

package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"

	"github.com/xpec-project/xpec/internal/hw"
)

type win32Processor struct {
	Name                      string
	NumberOfCores             uint32
	NumberOfLogicalProcessors uint32
	MaxClockSpeed             uint32
}

// newWMICPUAdapter queries Win32_Processor. Primary CPU source on
// Windows: unlike gopsutil it reports a usable MaxClockSpeed.
func newWMICPUAdapter() Adapter {
	return newAdapter("cpu-wmi", CategoryCPU, []string{"windows"}, 30, func(ctx context.Context) (*Facts, error) {
		var procs []win32Processor
		q := "SELECT Name, NumberOfCores, NumberOfLogicalProcessors, MaxClockSpeed FROM Win32_Processor"
		if err := wmi.Query(q, &procs); err != nil {
			return nil, AsFailure(err)
		}
		if len(procs) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no Win32_Processor rows")}
		}

		p := procs[0]
		return &Facts{CPU: &CPUFacts{
			Model:       strings.TrimSpace(p.Name),
			Cores:       int(p.NumberOfCores),
			Threads:     int(p.NumberOfLogicalProcessors),
			MaxClockMHz: float64(p.MaxClockSpeed),
		}}, nil
	})
}

type win32PhysicalMemory struct {
	Capacity             uint64
	Speed                uint32
	ConfiguredClockSpeed uint32
	Manufacturer         string
	PartNumber           string
	DeviceLocator        string
}

// newWMIMemoryAdapter queries Win32_PhysicalMemory for per-DIMM details.
// ConfiguredClockSpeed is preferred over the rated Speed.
func newWMIMemoryAdapter() Adapter {
	return newAdapter("memory-wmi", CategoryMemory, []string{"windows"}, 30, func(ctx context.Context) (*Facts, error) {
		var rows []win32PhysicalMemory
		q := "SELECT Capacity, Speed, ConfiguredClockSpeed, Manufacturer, PartNumber, DeviceLocator FROM Win32_PhysicalMemory"
		if err := wmi.Query(q, &rows); err != nil {
			return nil, AsFailure(err)
		}

		var modules []MemoryFacts
		for _, r := range rows {
			if r.Capacity == 0 {
				continue
			}
			m := MemoryFacts{
				CapacityBytes: r.Capacity,
				SpeedMTs:      r.ConfiguredClockSpeed,
				SlotLabel:     strings.TrimSpace(r.DeviceLocator),
			}
			if m.SpeedMTs == 0 {
				m.SpeedMTs = r.Speed
			}
			if !hw.IsPlaceholder(r.Manufacturer) {
				m.Manufacturer = strings.TrimSpace(r.Manufacturer)
			}
			if !hw.IsPlaceholder(r.PartNumber) {
				m.PartNumber = strings.TrimSpace(r.PartNumber)
			}
			modules = append(modules, m)
		}
		if len(modules) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no populated Win32_PhysicalMemory rows")}
		}
		return &Facts{Memory: modules}, nil
	})
}

type win32VideoController struct {
	Name        string
	AdapterRAM  uint32
	PNPDeviceID string
}

// newWMIGPUAdapter enumerates Win32_VideoController. Software adapters
// (Microsoft Basic Display and friends) are skipped. AdapterRAM is a
// 32-bit field that saturates at 4 GiB, which is why the vendor adapter's
// VRAM wins whenever it reports the same device.
func newWMIGPUAdapter() Adapter {
	return newAdapter("gpu-wmi", CategoryGPU, []string{"windows"}, 30, func(ctx context.Context) (*Facts, error) {
		var rows []win32VideoController
		q := "SELECT Name, AdapterRAM, PNPDeviceID FROM Win32_VideoController"
		if err := wmi.Query(q, &rows); err != nil {
			return nil, AsFailure(err)
		}

		var gpus []GPUFacts
		for _, r := range rows {
			name := strings.TrimSpace(r.Name)
			if name == "" || strings.Contains(name, "Microsoft") {
				continue
			}
			gpus = append(gpus, GPUFacts{
				Name:      name,
				Vendor:    gpuVendorFromName(name),
				VRAMBytes: uint64(r.AdapterRAM),
				BusID:     busIDFromPNP(r.PNPDeviceID),
			})
		}
		if len(gpus) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no hardware video controllers")}
		}
		return &Facts{GPUs: gpus}, nil
	})
}

func gpuVendorFromName(name string) string {
	u := strings.ToUpper(name)
	switch {
	case strings.Contains(u, "NVIDIA"), strings.Contains(u, "GEFORCE"), strings.Contains(u, "QUADRO"):
		return "NVIDIA"
	case strings.Contains(u, "AMD"), strings.Contains(u, "RADEON"):
		return "AMD"
	case strings.Contains(u, "INTEL"), strings.Contains(u, "ARC"), strings.Contains(u, "IRIS"), strings.Contains(u, "UHD"):
		return "Intel"
	}
	return ""
}

// busIDFromPNP has no PCI location to offer for most PNP device IDs;
// identity matching then falls back to the normalized name.
func busIDFromPNP(pnp string) string {
	return ""
}

type win32DiskDrive struct {
	Model         string
	Size          uint64
	InterfaceType string
	PNPDeviceID   string
}

// newWMIDiskAdapter is the last-resort storage source: Win32_DiskDrive
// states no media type, so devices stay unclassified unless their PNP ID
// carries the NVMe transport signal.
func newWMIDiskAdapter() Adapter {
	return newAdapter("storage-wmi-diskdrive", CategoryStorage, []string{"windows"}, 10, func(ctx context.Context) (*Facts, error) {
		var rows []win32DiskDrive
		q := "SELECT Model, Size, InterfaceType, PNPDeviceID FROM Win32_DiskDrive"
		if err := wmi.Query(q, &rows); err != nil {
			return nil, AsFailure(err)
		}

		var disks []StorageFacts
		for _, r := range rows {
			if r.Size == 0 {
				continue
			}
			disks = append(disks, StorageFacts{
				Model:     strings.TrimSpace(r.Model),
				SizeBytes: r.Size,
				NVMe:      strings.Contains(strings.ToUpper(r.PNPDeviceID), "NVME"),
				Bus:       strings.TrimSpace(r.InterfaceType),
			})
		}
		if len(disks) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no Win32_DiskDrive rows")}
		}
		return &Facts{Storage: disks}, nil
	})
}

type win32BaseBoard struct {
	Manufacturer string
	Product      string
}

// newWMIBoardAdapter queries Win32_BaseBoard, fallback behind the BIOS
// registry keys.
func newWMIBoardAdapter() Adapter {
	return newAdapter("board-wmi", CategoryBoard, []string{"windows"}, 20, func(ctx context.Context) (*Facts, error) {
		var rows []win32BaseBoard
		if err := wmi.Query("SELECT Manufacturer, Product FROM Win32_BaseBoard", &rows); err != nil {
			return nil, AsFailure(err)
		}
		if len(rows) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no Win32_BaseBoard rows")}
		}
		b := rows[0]
		if hw.IsPlaceholder(b.Manufacturer) && hw.IsPlaceholder(b.Product) {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("baseboard row is placeholders")}
		}
		return &Facts{Board: &BoardFacts{
			Manufacturer: strings.TrimSpace(b.Manufacturer),
			Product:      strings.TrimSpace(b.Product),
		}}, nil
	})
}
