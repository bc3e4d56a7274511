package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"newscorpus/storage"
)

// ParseIndices reads a file selection such as "0-2,7,10-11". An empty string
// or "all" selects every file and returns nil. Order is kept as written.
func ParseIndices(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}

	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid file index %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid file range %q", part)
			}
			if end < start {
				return nil, fmt.Errorf("invalid file range %q: end before start", part)
			}
		}

		for i := start; i <= end; i++ {
			if err := storage.ValidateIndex(i); err != nil {
				return nil, err
			}
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no file indices in %q", s)
	}
	return out, nil
}
