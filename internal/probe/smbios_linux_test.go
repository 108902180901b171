//go:build linux

package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDeviceBytes(t *testing.T) {
	tests := []struct {
		name     string
		size     uint16
		extended uint32
		want     uint64
	}{
		{"empty slot", 0, 0, 0},
		{"unknown", 0xFFFF, 0, 0},
		{"16 GiB in MiB units", 16384, 0, 16 << 30},
		{"extended size", 0x7FFF, 49152, 48 << 30},
		{"KiB units", 0x8000 | 640, 0, 640 << 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memoryDeviceBytes(tt.size, tt.extended))
		})
	}
}
