package progress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMarkers is returned for a marker list with a non-integer entry.
var ErrInvalidMarkers = errors.New("invalid markers: should be comma separated integers")

// ParseMarkers parses a comma-separated list of marker values such as
// "10,80,112". Blank entries are skipped. Values outside the drawable range
// are kept; the view skips them when drawing.
func ParseMarkers(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMarkers, tok)
		}
		out = append(out, n)
	}
	return out, nil
}

// FormatMarkers is the inverse of ParseMarkers.
func FormatMarkers(markers []int) string {
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}
