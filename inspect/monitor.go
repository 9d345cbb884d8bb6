package inspect

// ScanMonitor receives callbacks while Lookup scans chunk artifacts.
type ScanMonitor interface {
	Start(word string)
	ChunkScanned(name string, entries int)
	Finish(result *LookupResult)
}

// noopMonitor is a no-op implementation of ScanMonitor
type noopMonitor struct{}

var _ ScanMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) ChunkScanned(_ string, _ int) {}
func (n *noopMonitor) Finish(_ *LookupResult)       {}
