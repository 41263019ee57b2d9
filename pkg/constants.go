package findupes

// DefaultMinSize is the minimum file size in bytes considered for
// duplicate detection when no threshold is configured.
const DefaultMinSize uint64 = 100000

// compareBufferSize is the chunk size used when comparing file contents.
const compareBufferSize = 1024 * 1024 // 1 MiB

// identityIndexLevels is the maximum skiplist level count for the
// identity index built during collation.
const identityIndexLevels = 16

// ScanContext tags skiplist entries inserted by the current scan.
const ScanContext = "scan"

// Report format constants
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormat returns true if name is a known report format.
func ValidFormat(name string) bool {
	switch name {
	case FormatText, FormatHTML, FormatJSON:
		return true
	default:
		return false
	}
}
