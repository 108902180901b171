//go:build !linux && !windows

package probe

// platformAdapters returns no platform-native adapters on platforms
// without a dedicated family; the portable adapters still run.
func platformAdapters() []Adapter {
	return nil
}
