package findupes

// fileRecord represents one directory-entry observation of a regular file
// as produced by the walker. Hard links to the same file produce one
// record per directory entry; the collator collapses them afterwards.
type fileRecord struct {
	Path string // absolute path of the directory entry
	Dev  uint64 // device number from stat
	Ino  uint64 // inode number from stat
	Size uint64 // file size in bytes
}

// identity returns the on-disk identity of the observed file.
func (r *fileRecord) identity() FileIdentity {
	return FileIdentity{Dev: r.Dev, Ino: r.Ino}
}

// FileIdentity uniquely identifies one physical file on disk. Two directory
// entries with the same identity are hard links to the same data.
type FileIdentity struct {
	Dev uint64 `json:"device"`
	Ino uint64 `json:"inode"`
}

// LogicalFile is one on-disk file regardless of how many hard links point
// at it. Path is the first-encountered link; which link wins depends on
// traversal order, so only cluster membership (by identity) is guaranteed
// stable, not the representative path.
type LogicalFile struct {
	Identity FileIdentity `json:"identity"`
	Path     string       `json:"path"`
	Size     uint64       `json:"size_bytes"`
}

// DuplicateCluster represents a group of at least two logical files whose
// full byte contents have been proven identical by direct comparison.
type DuplicateCluster struct {
	Size  uint64   `json:"size_bytes"`
	Paths []string `json:"paths"`
	Count int      `json:"count"`
}
