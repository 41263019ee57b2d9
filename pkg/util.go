package findupes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseSizeSpec parses a file size string with an optional SI or IEC unit
// suffix, e.g. "100000", "500k", "10MB", "2GiB". SI suffixes (k, m, g, t,
// optionally followed by "b") multiply by powers of 1000; IEC suffixes
// (ki, mi, gi, ti, optionally followed by "b") multiply by powers of 1024.
// Matching is case-insensitive.
func ParseSizeSpec(spec string) (uint64, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return 0, fmt.Errorf("empty size specification")
	}

	// Split at the first alphabetic character
	numPart := s
	suffix := ""
	for i, ch := range s {
		if unicode.IsLetter(ch) {
			numPart = s[:i]
			suffix = s[i:]
			break
		}
	}

	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size specification %q", spec)
	}

	var multiplier uint64
	switch suffix {
	case "", "b":
		multiplier = 1
	case "k", "kb":
		multiplier = 1_000
	case "m", "mb":
		multiplier = 1_000_000
	case "g", "gb":
		multiplier = 1_000_000_000
	case "t", "tb":
		multiplier = 1_000_000_000_000
	case "ki", "kib":
		multiplier = 1024
	case "mi", "mib":
		multiplier = 1024 * 1024
	case "gi", "gib":
		multiplier = 1024 * 1024 * 1024
	case "ti", "tib":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix %q in %q", suffix, spec)
	}

	num, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size specification %q: %w", spec, err)
	}

	if multiplier > 1 && num > ^uint64(0)/multiplier {
		return 0, fmt.Errorf("size specification %q overflows", spec)
	}

	return num * multiplier, nil
}

// FormatSize renders a byte count with a binary unit suffix for human
// readable report output.
func FormatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
