//go:build windows

package probe

// platformAdapters returns the Windows-native adapters.
func platformAdapters() []Adapter {
	return []Adapter{
		newWMICPUAdapter(),
		newWMIMemoryAdapter(),
		newWMIGPUAdapter(),
		newMSFTPhysicalDiskAdapter(),
		newPowerShellDiskAdapter(),
		newWMIDiskAdapter(),
		newRegistryBoardAdapter(),
		newWMIBoardAdapter(),
	}
}
