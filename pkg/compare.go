package findupes

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// clusterGroup partitions one size group into duplicate-content clusters
// and returns the clusters with at least two members.
//
// Byte-identical content is an equivalence relation, and every file in the
// group already has the same size, so comparing each candidate against one
// representative per existing cluster suffices: if it matches a
// representative it belongs to that cluster, otherwise it starts a new one.
func (s *Scanner) clusterGroup(group sizeGroup) []DuplicateCluster {
	var members [][]LogicalFile

candidates:
	for _, file := range group.Files {
		for i := range members {
			equal, err := s.compareFileBytes(file.Path, members[i][0].Path, group.Size)
			if err != nil {
				// A read failure makes this pair's equality indeterminate.
				// Fail safe toward under-reporting: treat as non-duplicate
				// and keep comparing against the remaining clusters.
				s.log.Debug().Err(err).
					Str("path", file.Path).
					Str("representative", members[i][0].Path).
					Msg("comparison read failed, treating pair as distinct")
				continue
			}
			if equal {
				members[i] = append(members[i], file)
				continue candidates
			}
		}
		members = append(members, []LogicalFile{file})
	}

	var clusters []DuplicateCluster
	for _, m := range members {
		if len(m) < 2 {
			continue
		}
		paths := make([]string, len(m))
		for i, lf := range m {
			paths[i] = lf.Path
		}
		clusters = append(clusters, DuplicateCluster{
			Size:  group.Size,
			Paths: paths,
			Count: len(paths),
		})
	}

	return clusters
}

// compareFileBytes reports whether both files hold exactly size bytes of
// identical content. The files are read in matching chunks and the
// comparison short-circuits on the first differing chunk.
//
// A file that ends before the declared size is reached means the stat
// metadata lied (the file changed under us); that pair is reported unequal
// rather than failing the scan. Any other read error is returned to the
// caller.
func (s *Scanner) compareFileBytes(pathA, pathB string, size uint64) (bool, error) {
	fileA, err := os.Open(pathA)
	if err != nil {
		return false, err
	}
	defer fileA.Close()

	fileB, err := os.Open(pathB)
	if err != nil {
		return false, err
	}
	defer fileB.Close()

	// Comparison buffers are reused across pairs; the pipeline is
	// single-threaded so there is no sharing hazard.
	if s.bufA == nil {
		s.bufA = make([]byte, compareBufferSize)
		s.bufB = make([]byte, compareBufferSize)
	}

	remaining := size
	for remaining > 0 {
		n := uint64(compareBufferSize)
		if remaining < n {
			n = remaining
		}

		if _, err := io.ReadFull(fileA, s.bufA[:n]); err != nil {
			if isShortRead(err) {
				return false, nil
			}
			return false, err
		}
		if _, err := io.ReadFull(fileB, s.bufB[:n]); err != nil {
			if isShortRead(err) {
				return false, nil
			}
			return false, err
		}

		if !bytes.Equal(s.bufA[:n], s.bufB[:n]) {
			return false, nil
		}
		remaining -= n
	}

	return true, nil
}

// isShortRead returns true for an end-of-stream before the expected byte
// count, as opposed to a genuine I/O failure.
func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
