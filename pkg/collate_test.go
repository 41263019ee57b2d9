package findupes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIndex_CollapsesHardLinks(t *testing.T) {
	ix := newIdentityIndex()

	inserted := ix.Insert(fileRecord{Path: "/data/a", Dev: 1, Ino: 100, Size: 1000})
	require.True(t, inserted)

	// Second directory entry for the same (device, inode): a hard link.
	inserted = ix.Insert(fileRecord{Path: "/data/b", Dev: 1, Ino: 100, Size: 1000})
	require.False(t, inserted)

	require.Equal(t, 1, ix.Length())

	lf := ix.Find(FileIdentity{Dev: 1, Ino: 100})
	require.NotNil(t, lf)
	require.Equal(t, "/data/a", lf.Path, "first-encountered path is the representative")
	require.Equal(t, uint64(1000), lf.Size)
}

func TestIdentityIndex_SameInodeDifferentDevice(t *testing.T) {
	ix := newIdentityIndex()

	ix.Insert(fileRecord{Path: "/mnt/x/f", Dev: 1, Ino: 7, Size: 10})
	ix.Insert(fileRecord{Path: "/mnt/y/f", Dev: 2, Ino: 7, Size: 10})

	if ix.Length() != 2 {
		t.Errorf("Expected 2 logical files across devices, got %d", ix.Length())
	}
}

func TestIdentityIndex_IterationIsSortedByIdentity(t *testing.T) {
	ix := newIdentityIndex()

	ix.Insert(fileRecord{Path: "/c", Dev: 2, Ino: 1, Size: 1})
	ix.Insert(fileRecord{Path: "/a", Dev: 1, Ino: 9, Size: 1})
	ix.Insert(fileRecord{Path: "/b", Dev: 1, Ino: 2, Size: 1})

	var got []FileIdentity
	ix.ForEach(func(lf *LogicalFile) bool {
		got = append(got, lf.Identity)
		return true
	})

	want := []FileIdentity{
		{Dev: 1, Ino: 2},
		{Dev: 1, Ino: 9},
		{Dev: 2, Ino: 1},
	}
	require.Equal(t, want, got)
}

func TestIdentityIndex_ForEachEarlyStop(t *testing.T) {
	ix := newIdentityIndex()
	ix.Insert(fileRecord{Path: "/a", Dev: 1, Ino: 1, Size: 1})
	ix.Insert(fileRecord{Path: "/b", Dev: 1, Ino: 2, Size: 1})

	visited := 0
	ix.ForEach(func(lf *LogicalFile) bool {
		visited++
		return false
	})

	require.Equal(t, 1, visited)
}

func TestIdentityIndex_Empty(t *testing.T) {
	ix := newIdentityIndex()
	require.True(t, ix.IsEmpty())
	require.Nil(t, ix.Find(FileIdentity{Dev: 1, Ino: 1}))
}
