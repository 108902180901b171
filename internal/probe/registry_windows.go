//go:build windows

package probe

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/xpec-project/xpec/internal/hw"
)

const biosRegistryPath = `HARDWARE\DESCRIPTION\System\BIOS`

// newRegistryBoardAdapter reads the firmware-provided baseboard strings
// from the BIOS registry key. Outranks WMI: the key is readable without
// a WMI connection and carries SystemProductName as a fallback for
// boards that leave BaseBoardProduct as a placeholder.
func newRegistryBoardAdapter() Adapter {
	return newAdapter("board-registry", CategoryBoard, []string{"windows"}, 30, func(ctx context.Context) (*Facts, error) {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, biosRegistryPath, registry.QUERY_VALUE)
		if err != nil {
			return nil, AsFailure(err)
		}
		defer k.Close()

		manufacturer, _, _ := k.GetStringValue("BaseBoardManufacturer")
		product, _, _ := k.GetStringValue("BaseBoardProduct")
		if hw.IsPlaceholder(product) {
			if sysProduct, _, err := k.GetStringValue("SystemProductName"); err == nil && !hw.IsPlaceholder(sysProduct) {
				product = sysProduct
			}
		}
		if hw.IsPlaceholder(manufacturer) && hw.IsPlaceholder(product) {
			return nil, &Failure{Kind: Empty, Err: fmt.Errorf("registry baseboard values are placeholders")}
		}
		return &Facts{Board: &BoardFacts{Manufacturer: manufacturer, Product: product}}, nil
	})
}
