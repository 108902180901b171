package collector

import (
	"context"

	"github.com/xpec-project/xpec/internal/hw"
	"github.com/xpec-project/xpec/internal/probe"
)

// collectBoard consolidates the motherboard name from the first adapter
// that answers, shortening the vendor and stripping internal model-code
// suffixes. Returns "" when every source fails.
func (c *Collector) collectBoard(ctx context.Context) string {
	facts := c.collectFirst(ctx)
	if facts == nil || facts.Board == nil {
		c.diary.Verbose(string(probe.CategoryBoard), "no source produced a baseboard record")
		return ""
	}

	b := facts.Board
	vendor := ""
	if !hw.IsPlaceholder(b.Manufacturer) {
		vendor = hw.ShortVendor(b.Manufacturer)
	}
	product := ""
	if !hw.IsPlaceholder(b.Product) {
		product = hw.CleanBoardProduct(b.Product)
	}
	c.diary.Verbose(string(probe.CategoryBoard),
		"manufacturer=%q product=%q -> vendor=%q pretty=%q", b.Manufacturer, b.Product, vendor, product)

	switch {
	case vendor != "" && product != "":
		return vendor + " " + product
	case product != "":
		return product
	default:
		return vendor
	}
}
