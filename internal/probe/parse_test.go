package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpec-project/xpec/internal/hw"
)

func TestParseLsblk(t *testing.T) {
	out := []byte(`{
	  "blockdevices": [
	    {"name": "nvme0n1", "type": "disk", "model": "Samsung SSD 990 PRO 2TB", "size": 2000398934016, "rota": false, "tran": "nvme"},
	    {"name": "sda", "type": "disk", "model": "WDC WD40EZRZ-00GXCB0", "size": 4000787030016, "rota": true, "tran": "sata"},
	    {"name": "sr0", "type": "rom", "model": "DVD A DS8A8SH", "size": 1073741312, "rota": true, "tran": "sata"}
	  ]
	}`)
	disks, err := parseLsblk(out)
	require.NoError(t, err)
	require.Len(t, disks, 2)

	assert.Equal(t, "Samsung SSD 990 PRO 2TB", disks[0].Model)
	assert.Equal(t, uint64(2000398934016), disks[0].SizeBytes)
	assert.True(t, disks[0].NVMe)
	assert.Equal(t, "NVME", disks[0].Bus)
	// Non-rotational is not a media statement.
	assert.Equal(t, hw.MediaType(""), disks[0].Media)

	assert.Equal(t, hw.MediaHDD, disks[1].Media)
	assert.False(t, disks[1].NVMe)
}

func TestParseLsblkLegacyStringFields(t *testing.T) {
	out := []byte(`{"blockdevices": [
	  {"name": "sda", "type": "disk", "model": "ST2000DM008", "size": "2000398934016", "rota": "1", "tran": "sata"}
	]}`)
	disks, err := parseLsblk(out)
	require.NoError(t, err)
	require.Len(t, disks, 1)
	assert.Equal(t, uint64(2000398934016), disks[0].SizeBytes)
	assert.Equal(t, hw.MediaHDD, disks[0].Media)
}

func TestParseLsblkModelFallsBackToName(t *testing.T) {
	out := []byte(`{"blockdevices": [{"name": "vda", "type": "disk", "model": null, "size": 42949672960, "rota": false, "tran": null}]}`)
	disks, err := parseLsblk(out)
	require.NoError(t, err)
	require.Len(t, disks, 1)
	assert.Equal(t, "vda", disks[0].Model)
}

func TestParseLsblkNoDisks(t *testing.T) {
	_, err := parseLsblk([]byte(`{"blockdevices": []}`))
	require.Error(t, err)
	assert.Equal(t, Empty, AsFailure(err).Kind)
}

const dmidecodeSample = `# dmidecode 3.5
Getting SMBIOS data from sysfs.

Handle 0x0040, DMI type 17, 92 bytes
Memory Device
	Size: 16 GB
	Form Factor: DIMM
	Locator: DIMM_A1
	Bank Locator: P0 CHANNEL A
	Type: DDR4
	Speed: 3600 MT/s
	Manufacturer: Corsair
	Part Number: CMK32GX4M2D3600C18
	Configured Memory Speed: 3200 MT/s

Handle 0x0041, DMI type 17, 92 bytes
Memory Device
	Size: No Module Installed
	Locator: DIMM_A2

Handle 0x0042, DMI type 17, 92 bytes
Memory Device
	Size: 16 GB
	Locator: DIMM_B1
	Speed: 3600 MT/s
	Manufacturer: Unknown
	Part Number: CMK32GX4M2D3600C18
`

func TestParseDmidecodeMemory(t *testing.T) {
	modules := parseDmidecodeMemory(dmidecodeSample)
	require.Len(t, modules, 2)

	assert.Equal(t, uint64(16)<<30, modules[0].CapacityBytes)
	assert.Equal(t, "DIMM_A1", modules[0].SlotLabel)
	assert.Equal(t, "Corsair", modules[0].Manufacturer)
	// Configured speed wins over the rated speed.
	assert.Equal(t, uint32(3200), modules[0].SpeedMTs)

	// No configured speed reported: rated speed is the fallback, and the
	// placeholder manufacturer is dropped.
	assert.Equal(t, uint32(3600), modules[1].SpeedMTs)
	assert.Empty(t, modules[1].Manufacturer)
	assert.Equal(t, "DIMM_B1", modules[1].SlotLabel)
}

func TestParseDmiSize(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"16 GB", 16 << 30},
		{"8192 MB", 8192 << 20},
		{"2 TB", 2 << 40},
		{"No Module Installed", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDmiSize(tt.in), "input %q", tt.in)
	}
}

func TestParseNvidiaSMI(t *testing.T) {
	out := "NVIDIA GeForce RTX 4090, 24564, 00000000:01:00.0\n"
	gpus, err := parseNvidiaSMI(out)
	require.NoError(t, err)
	require.Len(t, gpus, 1)

	g := gpus[0]
	assert.Equal(t, "NVIDIA GeForce RTX 4090", g.Name)
	assert.Equal(t, "NVIDIA", g.Vendor)
	assert.Equal(t, uint64(24564)*1024*1024, g.VRAMBytes)
	assert.True(t, g.VendorVRAM)
	assert.Equal(t, "01:00.0", g.BusID)
}

func TestParseNvidiaSMIMultiGPU(t *testing.T) {
	out := "NVIDIA RTX A4000, 16376, 00000000:21:00.0\nNVIDIA RTX A4000, 16376, 00000000:4B:00.0\n"
	gpus, err := parseNvidiaSMI(out)
	require.NoError(t, err)
	require.Len(t, gpus, 2)
	assert.Equal(t, "21:00.0", gpus[0].BusID)
	assert.Equal(t, "4b:00.0", gpus[1].BusID)
}

func TestParseNvidiaSMIGarbage(t *testing.T) {
	_, err := parseNvidiaSMI("NVIDIA-SMI has failed")
	require.Error(t, err)
	assert.Equal(t, ParseError, AsFailure(err).Kind)
}

func TestNormalizeBusID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00000000:01:00.0", "01:00.0"},
		{"01:00.0", "01:00.0"},
		{"0000:2B:00.0", "2b:00.0"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBusID(tt.in), "input %q", tt.in)
	}
}

func TestParseLspci(t *testing.T) {
	out := `00:00.0 "Host bridge" "Advanced Micro Devices, Inc. [AMD]" "Renoir/Cezanne Root Complex" -r01 "" ""
01:00.0 "VGA compatible controller" "NVIDIA Corporation" "AD102 [GeForce RTX 4090]" -ra1 "ASUSTeK Computer Inc." "AD102"
30:00.0 "Display controller" "Advanced Micro Devices, Inc. [AMD/ATI]" "Cezanne [Radeon Vega Series]" -rc5 "" ""`
	gpus, err := parseLspci(out)
	require.NoError(t, err)
	require.Len(t, gpus, 2)

	assert.Equal(t, "AD102 [GeForce RTX 4090]", gpus[0].Name)
	assert.Equal(t, "NVIDIA", gpus[0].Vendor)
	assert.Equal(t, "01:00.0", gpus[0].BusID)
	assert.False(t, gpus[0].VendorVRAM)

	assert.Equal(t, "AMD", gpus[1].Vendor)
	assert.Equal(t, "30:00.0", gpus[1].BusID)
}

func TestSplitLspciLine(t *testing.T) {
	fields := splitLspciLine(`01:00.0 "VGA compatible controller" "NVIDIA Corporation" "AD102 [GeForce RTX 4090]"`)
	require.Len(t, fields, 4)
	assert.Equal(t, "01:00.0", fields[0])
	assert.Equal(t, "VGA compatible controller", fields[1])
	assert.Equal(t, "AD102 [GeForce RTX 4090]", fields[3])
}

func TestParsePowerShellDisksArray(t *testing.T) {
	out := []byte(`[
	  {"FriendlyName": "Samsung SSD 980 PRO 1TB", "MediaType": "SSD", "BusType": "NVMe", "Size": 1000204886016},
	  {"FriendlyName": "WDC WD40EZRZ", "MediaType": "HDD", "BusType": "SATA", "Size": 4000787030016}
	]`)
	disks, err := parsePowerShellDisks(out)
	require.NoError(t, err)
	require.Len(t, disks, 2)

	assert.Equal(t, hw.MediaSSD, disks[0].Media)
	assert.True(t, disks[0].NVMe)
	assert.Equal(t, hw.MediaHDD, disks[1].Media)
	assert.False(t, disks[1].NVMe)
}

func TestParsePowerShellDisksSingleObjectNumericCIM(t *testing.T) {
	out := []byte(`{"FriendlyName": "NVMe KINGSTON SNV2S1000G", "MediaType": 4, "BusType": 17, "Size": 1000204886016}`)
	disks, err := parsePowerShellDisks(out)
	require.NoError(t, err)
	require.Len(t, disks, 1)

	assert.Equal(t, hw.MediaSSD, disks[0].Media)
	assert.True(t, disks[0].NVMe)
	assert.Equal(t, "17", disks[0].Bus)
}

func TestPSMediaType(t *testing.T) {
	assert.Equal(t, hw.MediaSSD, psMediaType("SSD"))
	assert.Equal(t, hw.MediaSSD, psMediaType("SCM"))
	assert.Equal(t, hw.MediaHDD, psMediaType("3"))
	assert.Equal(t, hw.MediaType(""), psMediaType("Unspecified"))
	assert.Equal(t, hw.MediaType(""), psMediaType("0"))
}
