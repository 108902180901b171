package hw

import "time"

// MediaType classifies the storage medium of a device.
type MediaType string

const (
	MediaSSD     MediaType = "SSD"
	MediaHDD     MediaType = "HDD"
	MediaUnknown MediaType = "Unknown"
)

// Detection records how a classification was obtained: explicit means the
// provider stated the value directly, heuristic means it was inferred.
type Detection string

const (
	DetectionExplicit  Detection = "explicit"
	DetectionHeuristic Detection = "heuristic"
)

// Snapshot holds the fully merged hardware inventory of one run. It is
// built once by the assembler and never mutated afterwards; the renderer
// and the JSON output consume it read-only.
type Snapshot struct {
	ID          string              `json:"id"`
	Host        HostInfo            `json:"host"`
	CPU         CPUInfo             `json:"cpu"`
	Memory      []MemoryModule      `json:"memory_modules"`
	GPUs        []GPUInfo           `json:"gpus"`
	Storage     []StorageDevice     `json:"storage_devices"`
	Diagnostics map[string][]string `json:"diagnostics,omitempty"`
}

// HostInfo holds machine-level metadata captured alongside the categories.
type HostInfo struct {
	Hostname     string    `json:"hostname"`
	OS           string    `json:"os"`
	OSVersion    string    `json:"os_version,omitempty"`
	Architecture string    `json:"architecture"`
	Board        string    `json:"board,omitempty"`
	CollectedAt  time.Time `json:"collected_at"`
}

// CPUInfo holds processor details. Zero values mean unknown.
type CPUInfo struct {
	Model        string  `json:"model"`
	Cores        int     `json:"cores"`
	Threads      int     `json:"threads"`
	BaseClockMHz float64 `json:"base_clock_mhz,omitempty"`
	MaxClockMHz  float64 `json:"max_clock_mhz,omitempty"`
}

// MemoryModule holds details for a single physical memory DIMM.
type MemoryModule struct {
	CapacityBytes uint64 `json:"capacity_bytes"`
	SpeedMTs      uint32 `json:"speed_mts,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	PartNumber    string `json:"part_number,omitempty"`
	SlotLabel     string `json:"slot_label,omitempty"`
}

// GPUInfo holds details for one physical graphics device. VRAMBytes of
// zero means the amount could not be determined; VRAMSource names the
// adapter that supplied it.
type GPUInfo struct {
	Name       string `json:"name"`
	Vendor     string `json:"vendor,omitempty"`
	VRAMBytes  uint64 `json:"vram_bytes,omitempty"`
	VRAMSource string `json:"vram_source,omitempty"`
	BusID      string `json:"bus_id,omitempty"`
}

// StorageDevice holds details for one physical disk. Media is always one
// of SSD, HDD, or Unknown; Detection tells whether it was stated by the
// provider or inferred from the NVMe transport signal.
type StorageDevice struct {
	Model     string    `json:"model"`
	SizeBytes uint64    `json:"size_bytes"`
	Media     MediaType `json:"media_type"`
	Detection Detection `json:"detection"`
	Bus       string    `json:"bus,omitempty"`
}
