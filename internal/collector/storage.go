package collector

import (
	"context"

	"github.com/xpec-project/xpec/internal/hw"
)

// storageEntry carries the raw merge state before classification.
type storageEntry struct {
	model     string
	sizeBytes uint64
	media     hw.MediaType
	nvme      bool
	bus       string
}

// collectStorage merges disks across adapters and classifies each one.
// The media-type policy is deliberately small and auditable:
//
//  1. a provider that states the media type wins, tagged explicit;
//  2. otherwise an unambiguous NVMe transport signal means SSD, tagged
//     heuristic;
//  3. otherwise Unknown, tagged heuristic.
//
// Nothing else is consulted. A SATA SSD that no provider identifies stays
// Unknown: misreporting an HDD as SSD would be worse than admitting
// ignorance.
func (c *Collector) collectStorage(ctx context.Context) []hw.StorageDevice {
	var merged []storageEntry

	for _, r := range c.collectAll(ctx) {
		incoming := r.facts.Storage
		if len(merged) == 0 {
			for _, d := range incoming {
				merged = append(merged, storageEntry{
					model:     d.Model,
					sizeBytes: d.SizeBytes,
					media:     d.Media,
					nvme:      d.NVMe,
					bus:       d.Bus,
				})
			}
			continue
		}
		// Each incoming record feeds at most one merged entry, so twin
		// same-model disks pair up by position instead of both entries
		// reading the first match.
		used := make([]bool, len(incoming))
		for i := range merged {
			for j, d := range incoming {
				if used[j] || hw.NormalizeName(d.Model) != hw.NormalizeName(merged[i].model) {
					continue
				}
				used[j] = true
				if merged[i].sizeBytes == 0 {
					merged[i].sizeBytes = d.SizeBytes
				}
				if merged[i].media == "" {
					merged[i].media = d.Media
				}
				merged[i].nvme = merged[i].nvme || d.NVMe
				merged[i].bus = firstNonEmpty(merged[i].bus, d.Bus)
				break
			}
		}
	}

	devices := make([]hw.StorageDevice, 0, len(merged))
	for _, e := range merged {
		devices = append(devices, classifyStorage(e))
	}
	return devices
}

func classifyStorage(e storageEntry) hw.StorageDevice {
	d := hw.StorageDevice{
		Model:     e.model,
		SizeBytes: e.sizeBytes,
		Bus:       e.bus,
	}
	switch {
	case e.media != "":
		d.Media = e.media
		d.Detection = hw.DetectionExplicit
	case e.nvme:
		d.Media = hw.MediaSSD
		d.Detection = hw.DetectionHeuristic
	default:
		d.Media = hw.MediaUnknown
		d.Detection = hw.DetectionHeuristic
	}
	return d
}
