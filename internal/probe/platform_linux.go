//go:build linux

package probe

// platformAdapters returns the Linux-native adapters.
func platformAdapters() []Adapter {
	return []Adapter{
		newSMBIOSMemoryAdapter(),
		newDmidecodeMemoryAdapter(),
		newLsblkAdapter(),
		newLspciAdapter(),
		newSysfsBoardAdapter(),
		newSMBIOSBoardAdapter(),
	}
}
