package findupes

import (
	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// identityIndex is the ordered index of logical files built during
// collation. It is keyed by (device, inode) so that every hard link to the
// same on-disk file maps to a single entry, and iteration order is the key
// order, which keeps the rest of the pipeline deterministic regardless of
// how the tree was traversed.
type identityIndex struct {
	skiplist *zcsl.ZeroCopySkiplist[LogicalFile, FileIdentity, string]
}

// newIdentityIndex creates an empty identity index.
func newIdentityIndex() *identityIndex {
	// Key extractor function - the on-disk identity of the logical file
	getKeyFromItem := func(lf *LogicalFile) FileIdentity {
		return lf.Identity
	}

	// Size function for serialization - only the path length varies
	getItemSize := func(lf *LogicalFile) int {
		return len(lf.Path)
	}

	// Identity comparator: device number first, then inode number
	cmpKey := func(a, b FileIdentity) int {
		switch {
		case a.Dev < b.Dev:
			return -1
		case a.Dev > b.Dev:
			return 1
		case a.Ino < b.Ino:
			return -1
		case a.Ino > b.Ino:
			return 1
		default:
			return 0
		}
	}

	skiplist := zcsl.MakeZeroCopySkiplist[LogicalFile, FileIdentity, string](
		identityIndexLevels,
		getKeyFromItem,
		getItemSize,
		cmpKey,
	)

	return &identityIndex{skiplist: skiplist}
}

// Insert collates one walker record into the index. The first record seen
// for an identity creates the logical file and keeps that record's path;
// records for an already-seen identity are hard-link aliases and are
// discarded (the size is identical by filesystem semantics).
func (ix *identityIndex) Insert(rec fileRecord) bool {
	if node, _ := ix.skiplist.Find(rec.identity()); node != nil {
		return false
	}

	lf := LogicalFile{
		Identity: rec.identity(),
		Path:     rec.Path,
		Size:     rec.Size,
	}
	return ix.skiplist.Insert(&lf, ScanContext)
}

// Find returns the logical file for an identity, or nil if unseen.
func (ix *identityIndex) Find(id FileIdentity) *LogicalFile {
	node, _ := ix.skiplist.Find(id)
	if node == nil {
		return nil
	}
	return node.Item()
}

// ForEach iterates the logical files in identity order. The callback
// returns false to stop the iteration early.
func (ix *identityIndex) ForEach(callback func(*LogicalFile) bool) {
	for current := ix.skiplist.First(); current != nil; current = current.Next() {
		lf := current.Item()
		if lf == nil {
			continue
		}
		if !callback(lf) {
			break
		}
	}
}

// Length returns the number of distinct logical files collated so far.
func (ix *identityIndex) Length() int {
	return ix.skiplist.Length()
}

// IsEmpty returns true if no logical files have been collated.
func (ix *identityIndex) IsEmpty() bool {
	return ix.skiplist.IsEmpty()
}
