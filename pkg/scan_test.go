package findupes

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// clusterPathSets normalizes scan output to sorted path sets so tests can
// compare runs without depending on cluster or member ordering.
func clusterPathSets(clusters []DuplicateCluster) [][]string {
	sets := make([][]string, 0, len(clusters))
	for _, cluster := range clusters {
		paths := append([]string(nil), cluster.Paths...)
		sort.Strings(paths)
		sets = append(sets, paths)
	}
	sort.Slice(sets, func(i, j int) bool {
		return strings.Join(sets[i], "\x00") < strings.Join(sets[j], "\x00")
	})
	return sets
}

func TestScan_SameSizePartialMatch(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", strings.Repeat("X", 10))
	b := writeTestFile(t, tempDir, "b", strings.Repeat("X", 10))
	writeTestFile(t, tempDir, "c", strings.Repeat("Y", 10))
	writeTestFile(t, tempDir, "d", strings.Repeat("X", 5))

	clusters, err := Scan(tempDir, 0)
	require.NoError(t, err)

	// c shares a size with a and b but differs in content; d is alone in
	// its size group. Only {a, b} survives.
	require.Len(t, clusters, 1)
	require.Equal(t, uint64(10), clusters[0].Size)
	require.ElementsMatch(t, []string{a, b}, clusters[0].Paths)
}

func TestScan_HardLinksAreNotDuplicates(t *testing.T) {
	tempDir := t.TempDir()
	e := writeTestFile(t, tempDir, "e", strings.Repeat("z", 1000))
	require.NoError(t, os.Link(e, filepath.Join(tempDir, "f")))

	clusters, err := Scan(tempDir, 0)
	require.NoError(t, err)
	require.Empty(t, clusters, "hard links collapse to one logical file before grouping")
}

func TestScan_EmptyTree(t *testing.T) {
	clusters, err := Scan(t.TempDir(), 0)
	require.NoError(t, err)
	require.Empty(t, clusters)
}

func TestScan_MissingRoot(t *testing.T) {
	clusters, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), 0)
	require.Error(t, err)
	require.Nil(t, clusters)

	var rootErr *RootError
	require.True(t, errors.As(err, &rootErr), "missing root must surface as *RootError")
	require.True(t, os.IsNotExist(rootErr.Unwrap()))
}

func TestScan_ThreeWaySplit(t *testing.T) {
	tempDir := t.TempDir()
	p := writeTestFile(t, tempDir, "p", "identical bytes")
	q := writeTestFile(t, tempDir, "q", "identical bytes")
	writeTestFile(t, tempDir, "r", "divergent bytes")

	clusters, err := Scan(tempDir, 0)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	require.ElementsMatch(t, []string{p, q}, clusters[0].Paths)
}

func TestScan_MinSizeExcludesSmallDuplicates(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, tempDir, "tiny1", "dup")
	writeTestFile(t, tempDir, "tiny2", "dup")
	big := strings.Repeat("D", 2048)
	b1 := writeTestFile(t, tempDir, "big1", big)
	b2 := writeTestFile(t, tempDir, "big2", big)

	clusters, err := Scan(tempDir, 1024)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	require.ElementsMatch(t, []string{b1, b2}, clusters[0].Paths)
}

func TestScan_Idempotent(t *testing.T) {
	tempDir := t.TempDir()
	for i := 0; i < 4; i++ {
		writeTestFile(t, tempDir, filepath.Join("dir", string(rune('a'+i))), "same bytes everywhere")
	}
	writeTestFile(t, tempDir, "other", "something else entirely")

	first, err := Scan(tempDir, 0)
	require.NoError(t, err)
	second, err := Scan(tempDir, 0)
	require.NoError(t, err)

	require.Equal(t, clusterPathSets(first), clusterPathSets(second))
}

func TestScan_MonotonicInMinSize(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, tempDir, "s1", strings.Repeat("s", 100))
	writeTestFile(t, tempDir, "s2", strings.Repeat("s", 100))
	writeTestFile(t, tempDir, "m1", strings.Repeat("m", 1000))
	writeTestFile(t, tempDir, "m2", strings.Repeat("m", 1000))
	writeTestFile(t, tempDir, "l1", strings.Repeat("l", 10000))
	writeTestFile(t, tempDir, "l2", strings.Repeat("l", 10000))

	previous := -1
	for _, minSize := range []uint64{0, 100, 101, 1000, 1001, 10000, 10001} {
		clusters, err := Scan(tempDir, minSize)
		require.NoError(t, err)

		found := 0
		for _, cluster := range clusters {
			found += cluster.Count
		}
		if previous >= 0 && found > previous {
			t.Errorf("Raising min size to %d increased duplicates from %d to %d",
				minSize, previous, found)
		}
		previous = found
	}
}

func TestScan_SymlinkedDuplicateNotDoubleCounted(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", "linked content")
	b := writeTestFile(t, tempDir, "b", "linked content")
	require.NoError(t, os.Symlink(a, filepath.Join(tempDir, "a-link")))

	clusters, err := Scan(tempDir, 0)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	require.ElementsMatch(t, []string{a, b}, clusters[0].Paths)
}

func TestScan_RootIsRegularFile(t *testing.T) {
	tempDir := t.TempDir()
	path := writeTestFile(t, tempDir, "single", "alone")

	// A single file cannot have duplicates, but scanning it is legal.
	clusters, err := Scan(path, 0)
	require.NoError(t, err)
	require.Empty(t, clusters)
}

func TestScan_ClusterSizesMatchMembers(t *testing.T) {
	tempDir := t.TempDir()
	content := strings.Repeat("0", 512)
	writeTestFile(t, tempDir, "x/one", content)
	writeTestFile(t, tempDir, "y/two", content)
	writeTestFile(t, tempDir, "z/three", content)

	clusters, err := Scan(tempDir, 0)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	require.Equal(t, uint64(512), clusters[0].Size)
	require.Equal(t, 3, clusters[0].Count)

	for _, path := range clusters[0].Paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, int64(512), info.Size())
	}
}
