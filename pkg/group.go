package findupes

import (
	"sort"
)

// sizeGroup is a set of logical files sharing one exact byte size, all at
// or above the configured minimum. Groups with fewer than two members are
// never materialized since they cannot contain a duplicate pair.
type sizeGroup struct {
	Size  uint64
	Files []LogicalFile
}

// groupBySize partitions the collated logical files into candidate groups
// by exact size. Files below the minimum-size threshold are dropped before
// bucketing, and singleton buckets are pruned afterwards. This is the
// cheap pre-filter that avoids byte comparison for files whose size alone
// disproves duplication.
//
// Groups are returned in ascending size order so that report output is
// stable within one scan.
func (s *Scanner) groupBySize(ix *identityIndex) []sizeGroup {
	buckets := make(map[uint64][]LogicalFile)

	ix.ForEach(func(lf *LogicalFile) bool {
		if lf.Size < s.minSize {
			return true
		}
		buckets[lf.Size] = append(buckets[lf.Size], *lf)
		return true
	})

	sizes := make([]uint64, 0, len(buckets))
	for size, files := range buckets {
		if len(files) < 2 {
			continue
		}
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	groups := make([]sizeGroup, 0, len(sizes))
	for _, size := range sizes {
		groups = append(groups, sizeGroup{Size: size, Files: buckets[size]})
	}

	s.log.Debug().
		Int("files", ix.Length()).
		Int("candidate_groups", len(groups)).
		Msg("size grouping complete")

	return groups
}
