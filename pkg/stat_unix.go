//go:build unix

package findupes

import (
	"os"
	"syscall"
)

// statIdentity extracts the device and inode numbers from a FileInfo. The
// second return value is false when the platform stat data is unavailable,
// in which case the entry cannot be collated and must be skipped.
func statIdentity(info os.FileInfo) (FileIdentity, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return FileIdentity{}, false
	}
	return FileIdentity{
		Dev: uint64(stat.Dev),
		Ino: uint64(stat.Ino),
	}, true
}
