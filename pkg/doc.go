// Package findupes identifies duplicate regular files within a filesystem
// subtree and reports them.
//
// # Pipeline
//
// A scan runs four stages in sequence: a breadth-first walk that yields
// only regular files, collation by (device, inode) so hard links count as
// one file, grouping by exact byte size (files below the minimum size and
// singleton groups are dropped), and pairwise byte comparison within each
// size group to confirm true duplicates. No content hashing is performed;
// matches are proven by reading the bytes.
//
// # Core API
//
// The one-off form:
//
//	clusters, err := findupes.Scan("/path/to/tree", findupes.DefaultMinSize)
//
// Or with options:
//
//	scanner := findupes.NewScanner(findupes.Options{
//		MinSize:  500_000,
//		Excludes: []string{".git"},
//	})
//	clusters, err := scanner.Scan("/path/to/tree")
//
// Each DuplicateCluster carries the common size and the member paths.
// Clusters can be rendered with WriteText, WriteJSON or WriteHTML.
//
// # Error behaviour
//
// Only a root path that cannot be statted fails a scan (reported as
// *RootError). Unreadable subtrees and files that change mid-comparison
// are skipped, erring toward under-reporting rather than aborting.
package findupes
