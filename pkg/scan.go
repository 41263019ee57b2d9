package findupes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Options configures a Scanner.
type Options struct {
	// MinSize is the minimum file size in bytes considered for duplicate
	// detection. Zero means consider every regular file.
	MinSize uint64

	// Excludes lists directory basenames that are skipped entirely during
	// traversal (e.g. ".git", "node_modules").
	Excludes []string

	// Logger receives debug-level diagnostics for skipped entries and
	// stage summaries. Nil disables logging.
	Logger *zerolog.Logger
}

// Scanner runs the duplicate detection pipeline: walk the tree, collate
// hard links by (device, inode), group candidates by size, then confirm
// duplicates by byte-exact comparison. A Scanner is single-threaded and
// must not be shared between goroutines; it never mutates the filesystem.
type Scanner struct {
	minSize  uint64
	excludes map[string]struct{}
	log      zerolog.Logger

	// comparison buffers, allocated lazily on first use
	bufA []byte
	bufB []byte
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts Options) *Scanner {
	excludes := make(map[string]struct{}, len(opts.Excludes))
	for _, name := range opts.Excludes {
		excludes[name] = struct{}{}
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Scanner{
		minSize:  opts.MinSize,
		excludes: excludes,
		log:      log,
	}
}

// RootError reports that the scan root itself could not be opened or
// statted. Unlike per-entry failures deeper in the tree, this is fatal and
// the scan returns no results.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("cannot scan root %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// Scan runs the full pipeline once and returns the duplicate clusters
// found under root. An empty tree yields an empty list and no error; an
// unusable root yields a *RootError and no clusters. All other I/O
// failures degrade silently by omitting the affected files.
//
// Running Scan twice on an unchanged tree yields clusters with identical
// path sets, though cluster ordering and the choice of hard-link
// representative path may differ between builds of the tree.
func (s *Scanner) Scan(root string) ([]DuplicateCluster, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &RootError{Path: root, Err: err}
	}

	// The root is the one place a symlink is resolved: scanning a
	// symlinked root means scanning its target.
	rootInfo, err := os.Stat(absRoot)
	if err != nil {
		return nil, &RootError{Path: absRoot, Err: err}
	}

	s.log.Debug().Str("root", absRoot).Uint64("min_size", s.minSize).Msg("scan starting")

	index := newIdentityIndex()
	if err := s.walk(absRoot, rootInfo, func(rec fileRecord) {
		index.Insert(rec)
	}); err != nil {
		return nil, err
	}

	clusters := []DuplicateCluster{}
	for _, group := range s.groupBySize(index) {
		clusters = append(clusters, s.clusterGroup(group)...)
	}

	s.log.Debug().Int("clusters", len(clusters)).Msg("scan complete")

	return clusters, nil
}

// Scan is a convenience wrapper that runs a one-off scan with the given
// minimum size and no excludes or logging.
func Scan(root string, minSize uint64) ([]DuplicateCluster, error) {
	return NewScanner(Options{MinSize: minSize}).Scan(root)
}
