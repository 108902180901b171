package diag

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryOutcomesAlwaysSurface(t *testing.T) {
	d := NewDiary()
	d.Record("storage", "storage-lsblk", Failed("provider-unavailable"))
	d.Record("storage", "storage-powershell", Skipped("platform linux"))
	d.Record("cpu", "cpu-gopsutil", OutcomeSucceeded)

	notes := d.Notes(Switches{})
	require.Len(t, notes["storage"], 2)
	assert.Equal(t, "storage-lsblk: failed:provider-unavailable", notes["storage"][0])
	assert.Equal(t, "storage-powershell: skipped:platform linux", notes["storage"][1])
	assert.Equal(t, []string{"cpu-gopsutil: succeeded"}, notes["cpu"])
}

func TestDiaryVerboseGatedBySwitches(t *testing.T) {
	d := NewDiary()
	d.Record("board", "board-sysfs-dmi", OutcomeSucceeded)
	d.Verbose("board", "manufacturer=%q", "Micro-Star International")
	d.Verbose("gpu", "matched by bus id %s", "01:00.0")

	off := d.Notes(Switches{})
	assert.Len(t, off["board"], 1)
	assert.NotContains(t, off, "gpu")

	on := d.Notes(Switches{Board: true, GPU: true})
	require.Len(t, on["board"], 2)
	assert.Equal(t, `manufacturer="Micro-Star International"`, on["board"][1])
	assert.Equal(t, []string{"matched by bus id 01:00.0"}, on["gpu"])
}

func TestDiaryVerboseOtherCategoriesNeverSurface(t *testing.T) {
	d := NewDiary()
	d.Verbose("memory", "detail that has no switch")
	notes := d.Notes(Switches{Board: true, GPU: true})
	assert.NotContains(t, notes, "memory")
}

func TestDiaryConcurrentWrites(t *testing.T) {
	d := NewDiary()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Record("gpu", "gpu-wmi", OutcomeSucceeded)
			d.Verbose("gpu", "line")
		}()
	}
	wg.Wait()
	notes := d.Notes(Switches{GPU: true})
	assert.Len(t, notes["gpu"], 100)
}

func TestSwitchesFromEnv(t *testing.T) {
	t.Setenv("XPEC_DEBUG", "")
	t.Setenv("XPEC_DEBUG_MOBO", "1")
	t.Setenv("XPEC_DEBUG_GPU", "")
	sw := SwitchesFromEnv()
	assert.True(t, sw.Board)
	assert.False(t, sw.GPU)

	t.Setenv("XPEC_DEBUG", "yes")
	t.Setenv("XPEC_DEBUG_MOBO", "")
	sw = SwitchesFromEnv()
	assert.True(t, sw.Board)
	assert.True(t, sw.GPU)

	t.Setenv("XPEC_DEBUG", "0")
	sw = SwitchesFromEnv()
	assert.False(t, sw.Board)
	assert.False(t, sw.GPU)
}
