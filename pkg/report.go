package findupes

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"syscall"
	"unsafe"

	"github.com/google/vectorio"
	"golang.org/x/sys/unix"
)

const htmlReportTop = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Results</title>
    <style>
        html {
            font-family: sans-serif;
        }

        table {
            border-collapse: collapse;
            border: 1px solid black;
            margin: 1em;
        }

        th, td {
            padding: 0.5em 1em;
            border: 1px solid black;
        }
    </style>
  </head>
  <body>
    <table>
      <thead>
        <tr><th>Files</th><th>Size</th></tr>
      </thead>
      <tbody>
`

const htmlReportBottom = `</tbody>
    </table>
  </body>
</html>
`

// WriteText renders duplicate clusters as a plain listing for terminals:
// one header line per cluster followed by its member paths.
func WriteText(w io.Writer, clusters []DuplicateCluster) error {
	if len(clusters) == 0 {
		_, err := fmt.Fprintln(w, "No duplicates found.")
		return err
	}

	for i, cluster := range clusters {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d files of %s (%d bytes):\n",
			cluster.Count, FormatSize(cluster.Size), cluster.Size); err != nil {
			return err
		}
		for _, path := range cluster.Paths {
			if _, err := fmt.Fprintf(w, "  %s\n", path); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON renders duplicate clusters as a JSON array.
func WriteJSON(w io.Writer, clusters []DuplicateCluster) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(clusters); err != nil {
		return fmt.Errorf("failed to encode clusters as JSON: %w", err)
	}
	return nil
}

// WriteHTML renders duplicate clusters as an HTML table of {files, size}
// rows and writes the document to file using vectorio for efficient bulk
// writes (one iovec per row, chunked to respect the IOV_MAX limit).
func WriteHTML(file *os.File, clusters []DuplicateCluster) error {
	// Render each document segment independently so the writev below can
	// gather them without concatenating in memory first.
	segments := make([][]byte, 0, len(clusters)+2)
	segments = append(segments, []byte(htmlReportTop))
	for _, cluster := range clusters {
		segments = append(segments, renderHTMLRow(cluster))
	}
	segments = append(segments, []byte(htmlReportBottom))

	// Build iovecs, skipping any empty segment (zero-length iovecs are
	// pointless and have no valid base pointer).
	iovecs := make([]syscall.Iovec, 0, len(segments))
	totalSize := 0
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		iovecs = append(iovecs, syscall.Iovec{
			Base: (*byte)(unsafe.Pointer(&seg[0])),
			Len:  uint64(len(seg)),
		})
		totalSize += len(seg)
	}

	maxIovecs, err := getSystemIOVMax()
	if err != nil {
		return fmt.Errorf("failed to get system IOV_MAX: %w", err)
	}

	totalWritten := 0
	for offset := 0; offset < len(iovecs); offset += maxIovecs {
		end := offset + maxIovecs
		if end > len(iovecs) {
			end = len(iovecs)
		}

		// Use slice without copying to avoid allocation
		chunk := iovecs[offset:end]

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), chunk)
		if err != nil {
			return fmt.Errorf("failed to write report chunk with vectorio: %w", err)
		}
		totalWritten += nw
	}

	if totalWritten != totalSize {
		return fmt.Errorf("report write incomplete: wrote %d bytes, expected %d", totalWritten, totalSize)
	}

	return nil
}

// renderHTMLRow renders one duplicate cluster as a table row.
func renderHTMLRow(cluster DuplicateCluster) []byte {
	var sb strings.Builder
	sb.WriteString("    <tr><td>")
	for _, path := range cluster.Paths {
		sb.WriteString("<p><code>")
		sb.WriteString(html.EscapeString(path))
		sb.WriteString("</code></p>")
	}
	fmt.Fprintf(&sb, "</td><td>%d</td></tr>\n", cluster.Size)
	return []byte(sb.String())
}

// getSystemIOVMax returns the system's IOV_MAX limit using sysconf(_SC_IOV_MAX)
// Falls back to conservative default if sysconf fails
func getSystemIOVMax() (int, error) {
	// _SC_IOV_MAX constant for sysconf() - platform specific
	const SC_IOV_MAX = 60   // Linux value, may vary on other platforms
	const fallbackIOVMax = 1024 // Conservative default per golang/go#58623

	// Call sysconf directly using unix.Syscall (syscall 99 on Linux)
	r1, _, errno := unix.Syscall(99, uintptr(SC_IOV_MAX), 0, 0)
	if errno != 0 {
		// Fall back to conservative default if sysconf fails
		return fallbackIOVMax, nil
	}

	iovMax := int(r1)

	// Validate the result is reasonable, fall back if not
	if iovMax <= 0 || iovMax > 1<<20 { // Sanity check: between 1 and 1M
		return fallbackIOVMax, nil
	}

	return iovMax, nil
}
