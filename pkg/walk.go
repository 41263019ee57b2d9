package findupes

import (
	"os"
	"path/filepath"
)

// walkStats tracks what the walker saw, for the end-of-walk debug summary.
type walkStats struct {
	DirsRead     int
	FilesYielded int
	Skipped      int
}

// walk performs a breadth-first traversal from root and calls emit once per
// regular file found. Directories are descended but never emitted; symlinks
// are never followed or emitted; sockets, FIFOs and device files are
// ignored. Per-entry stat or read failures skip the affected entry or
// subtree and the walk continues.
//
// The caller has already validated root, so rootInfo is the (symlink
// resolved) stat of an existing path. os.ReadDir returns entries sorted by
// name, which makes the traversal deterministic for a fixed tree.
func (s *Scanner) walk(root string, rootInfo os.FileInfo, emit func(fileRecord)) error {
	stats := walkStats{}

	// The root itself may be a regular file rather than a directory.
	if rootInfo.Mode().IsRegular() {
		if id, ok := statIdentity(rootInfo); ok {
			emit(fileRecord{Path: root, Dev: id.Dev, Ino: id.Ino, Size: uint64(rootInfo.Size())})
			stats.FilesYielded++
		}
		s.log.Debug().Int("files", stats.FilesYielded).Msg("walk complete (root is a regular file)")
		return nil
	}

	// Track visited directories by identity so hard-linked or bind-mounted
	// directory cycles cannot loop the traversal.
	seenDirs := make(map[FileIdentity]struct{})
	if id, ok := statIdentity(rootInfo); ok {
		seenDirs[id] = struct{}{}
	}

	dirQueue := []string{root}
	for len(dirQueue) > 0 {
		dir := dirQueue[0]
		dirQueue = dirQueue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Permission or transient I/O failure on one directory only
			// excludes that subtree; the walk continues.
			s.log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
			stats.Skipped++
			continue
		}
		stats.DirsRead++

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			switch {
			case entry.IsDir():
				if s.isExcluded(entry.Name()) {
					stats.Skipped++
					continue
				}
				info, err := entry.Info()
				if err != nil {
					s.log.Debug().Err(err).Str("path", path).Msg("skipping unstatable directory")
					stats.Skipped++
					continue
				}
				if id, ok := statIdentity(info); ok {
					if _, seen := seenDirs[id]; seen {
						stats.Skipped++
						continue
					}
					seenDirs[id] = struct{}{}
				}
				dirQueue = append(dirQueue, path)

			case entry.Type().IsRegular():
				info, err := entry.Info()
				if err != nil {
					s.log.Debug().Err(err).Str("path", path).Msg("skipping unstatable file")
					stats.Skipped++
					continue
				}
				id, ok := statIdentity(info)
				if !ok {
					// Without device and inode numbers the file cannot be
					// collated against its hard links.
					stats.Skipped++
					continue
				}
				emit(fileRecord{Path: path, Dev: id.Dev, Ino: id.Ino, Size: uint64(info.Size())})
				stats.FilesYielded++

			default:
				// Symlink, socket, FIFO, or device file.
				stats.Skipped++
			}
		}
	}

	s.log.Debug().
		Int("dirs", stats.DirsRead).
		Int("files", stats.FilesYielded).
		Int("skipped", stats.Skipped).
		Msg("walk complete")

	return nil
}

// isExcluded returns true if a directory basename is on the exclude list.
func (s *Scanner) isExcluded(name string) bool {
	_, ok := s.excludes[name]
	return ok
}
