package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xpec-project/xpec/internal/hw"
)

// newPowerShellDiskAdapter shells out to Get-PhysicalDisk. It sits
// between the CIM adapter and Win32_DiskDrive: same data as the former
// but reachable when the in-process WMI connection to the Storage
// namespace is refused.
func newPowerShellDiskAdapter() Adapter {
	return newAdapter("storage-powershell", CategoryStorage, []string{"windows"}, 20, func(ctx context.Context) (*Facts, error) {
		out, err := runCommand(ctx, "powershell", "-NoProfile", "-Command",
			"Get-PhysicalDisk | Select-Object FriendlyName, MediaType, BusType, Size | ConvertTo-Json -Compress")
		if err != nil {
			return nil, err
		}
		disks, err := parsePowerShellDisks(out)
		if err != nil {
			return nil, err
		}
		return &Facts{Storage: disks}, nil
	})
}

type psPhysicalDisk struct {
	FriendlyName string          `json:"FriendlyName"`
	MediaType    json.RawMessage `json:"MediaType"`
	BusType      json.RawMessage `json:"BusType"`
	Size         uint64          `json:"Size"`
}

// parsePowerShellDisks handles both shapes ConvertTo-Json emits: a JSON
// array for several disks, a bare object for one. MediaType and BusType
// arrive as strings or as raw CIM integers depending on the PowerShell
// version.
func parsePowerShellDisks(out []byte) ([]StorageFacts, error) {
	var rows []psPhysicalDisk
	if err := json.Unmarshal(out, &rows); err != nil {
		var single psPhysicalDisk
		if err := json.Unmarshal(out, &single); err != nil {
			return nil, parseFail(fmt.Errorf("Get-PhysicalDisk json: %w", err))
		}
		rows = []psPhysicalDisk{single}
	}

	var disks []StorageFacts
	for _, r := range rows {
		name := strings.TrimSpace(r.FriendlyName)
		if name == "" && r.Size == 0 {
			continue
		}
		bus := rawCIMValue(r.BusType)
		d := StorageFacts{
			Model:     name,
			SizeBytes: r.Size,
			Media:     psMediaType(rawCIMValue(r.MediaType)),
			NVMe:      bus == "NVMe" || bus == "17",
			Bus:       bus,
		}
		disks = append(disks, d)
	}
	if len(disks) == 0 {
		return nil, &Failure{Kind: Empty, Err: fmt.Errorf("Get-PhysicalDisk listed no disks")}
	}
	return disks, nil
}

func rawCIMValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%d", n)
	}
	return ""
}

func psMediaType(v string) hw.MediaType {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "SSD", "SCM", "4", "5":
		return hw.MediaSSD
	case "HDD", "3":
		return hw.MediaHDD
	}
	return ""
}
