package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xpec-project/xpec/internal/hw"
)

const dmiSysfsRoot = "/sys/devices/virtual/dmi/id"

// newSysfsBoardAdapter reads the motherboard vendor and name from the
// kernel's DMI sysfs files. World-readable, so it outranks the SMBIOS
// table adapter which usually needs root.
func newSysfsBoardAdapter() Adapter {
	return newSysfsBoardAdapterAt(dmiSysfsRoot)
}

func newSysfsBoardAdapterAt(root string) Adapter {
	return newAdapter("board-sysfs-dmi", CategoryBoard, []string{"linux"}, 30, func(ctx context.Context) (*Facts, error) {
		vendor, err := readSysfsValue(filepath.Join(root, "board_vendor"))
		if err != nil {
			return nil, AsFailure(err)
		}
		name, err := readSysfsValue(filepath.Join(root, "board_name"))
		if err != nil {
			return nil, AsFailure(err)
		}
		if hw.IsPlaceholder(vendor) && hw.IsPlaceholder(name) {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("dmi board fields are placeholders")}
		}
		return &Facts{Board: &BoardFacts{Manufacturer: vendor, Product: name}}, nil
	})
}

func readSysfsValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
