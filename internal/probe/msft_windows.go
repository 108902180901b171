//go:build windows

package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"

	"github.com/xpec-project/xpec/internal/hw"
)

const storageNamespace = `root\Microsoft\Windows\Storage`

// MSFT_PhysicalDisk bus types; 0x11 is the NVMe transport.
const msftBusTypeNVMe = 0x11

type msftPhysicalDisk struct {
	FriendlyName string
	MediaType    uint16
	BusType      uint16
	Size         uint64
}

// newMSFTPhysicalDiskAdapter queries MSFT_PhysicalDisk in the Storage
// namespace, the only Windows provider that states the media type
// directly (3=HDD, 4=SSD, 5=SCM).
func newMSFTPhysicalDiskAdapter() Adapter {
	return newAdapter("storage-msft-physicaldisk", CategoryStorage, []string{"windows"}, 30, func(ctx context.Context) (*Facts, error) {
		var rows []msftPhysicalDisk
		q := "SELECT FriendlyName, MediaType, BusType, Size FROM MSFT_PhysicalDisk"
		if err := wmi.QueryNamespace(q, &rows, storageNamespace); err != nil {
			return nil, AsFailure(err)
		}

		var disks []StorageFacts
		for _, r := range rows {
			d := StorageFacts{
				Model:     strings.TrimSpace(r.FriendlyName),
				SizeBytes: r.Size,
				Media:     msftMediaType(r.MediaType),
				NVMe:      r.BusType == msftBusTypeNVMe,
				Bus:       msftBusName(r.BusType),
			}
			disks = append(disks, d)
		}
		if len(disks) == 0 {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("no MSFT_PhysicalDisk rows")}
		}
		return &Facts{Storage: disks}, nil
	})
}

func msftMediaType(mt uint16) hw.MediaType {
	switch mt {
	case 3:
		return hw.MediaHDD
	case 4, 5:
		return hw.MediaSSD
	}
	return ""
}

func msftBusName(bt uint16) string {
	switch bt {
	case 0x03:
		return "ATA"
	case 0x07:
		return "USB"
	case 0x08:
		return "RAID"
	case 0x0A:
		return "SAS"
	case 0x0B:
		return "SATA"
	case msftBusTypeNVMe:
		return "NVMe"
	case 0x12:
		return "SCM"
	}
	return ""
}
