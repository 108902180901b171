package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xpec-project/xpec/internal/hw"
)

// newLsblkAdapter enumerates whole disks via lsblk. ROTA=1 is a direct
// statement of a rotational medium and maps to HDD; a non-rotational
// device is deliberately NOT classified here, so the collector's NVMe
// transport rule stays the only SSD heuristic.
func newLsblkAdapter() Adapter {
	return newAdapter("storage-lsblk", CategoryStorage, []string{"linux"}, 30, func(ctx context.Context) (*Facts, error) {
		out, err := runCommand(ctx, "lsblk", "-d", "-b", "-J", "-o", "NAME,TYPE,MODEL,SIZE,ROTA,TRAN")
		if err != nil {
			return nil, err
		}
		disks, err := parseLsblk(out)
		if err != nil {
			return nil, err
		}
		return &Facts{Storage: disks}, nil
	})
}

// lsblk emits booleans and sizes as JSON bools/numbers on current
// versions but as "0"/"1" and digit strings on older ones; the flexible
// types below accept both.

type lsblkBool bool

func (b *lsblkBool) UnmarshalJSON(data []byte) error {
	switch s := strings.Trim(string(data), `"`); s {
	case "true", "1":
		*b = true
	case "false", "0", "null", "":
		*b = false
	default:
		return fmt.Errorf("lsblk bool %q", s)
	}
	return nil
}

type lsblkUint64 uint64

func (u *lsblkUint64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("lsblk size %q", s)
	}
	*u = lsblkUint64(n)
	return nil
}

type lsblkDevice struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Model string      `json:"model"`
	Size  lsblkUint64 `json:"size"`
	Rota  lsblkBool   `json:"rota"`
	Tran  string      `json:"tran"`
}

type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

func parseLsblk(out []byte) ([]StorageFacts, error) {
	var parsed lsblkOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, parseFail(fmt.Errorf("lsblk json: %w", err))
	}

	var disks []StorageFacts
	for _, dev := range parsed.BlockDevices {
		if dev.Type != "" && dev.Type != "disk" {
			continue
		}
		model := strings.TrimSpace(dev.Model)
		if model == "" {
			model = dev.Name
		}
		d := StorageFacts{
			Model:     model,
			SizeBytes: uint64(dev.Size),
			NVMe:      strings.EqualFold(dev.Tran, "nvme"),
			Bus:       strings.ToUpper(dev.Tran),
		}
		if bool(dev.Rota) {
			d.Media = hw.MediaHDD
		}
		disks = append(disks, d)
	}
	if len(disks) == 0 {
		return nil, &Failure{Kind: Empty, Err: fmt.Errorf("lsblk listed no disks")}
	}
	return disks, nil
}
