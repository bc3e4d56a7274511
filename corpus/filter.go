package corpus

import (
	"strings"
	"time"

	"newscorpus/types"
)

// FilterByDate keeps articles published within [start, end]. Either bound may
// be empty to leave that side open. Bounds are compared as instants, so a
// date-only end such as "2023-12-31" means midnight at the start of that day.
// Articles with a missing or unparseable publish_date are always dropped.
func FilterByDate(t Table, start, end string) (Table, error) {
	from, hasFrom, err := parseBound(start)
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseBound(end)
	if err != nil {
		return nil, err
	}

	return t.filter(func(a *types.Article) bool {
		published, ok := a.PublishedAt()
		if !ok {
			return false
		}
		if hasFrom && published.Before(from) {
			return false
		}
		if hasTo && published.After(to) {
			return false
		}
		return true
	}), nil
}

func parseBound(value string) (time.Time, bool, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false, nil
	}
	t, ok := types.ParseDate(value)
	if !ok {
		return time.Time{}, false, &types.DateError{Value: value}
	}
	return t, true, nil
}

// FilterBySource keeps articles whose source exactly matches one of sources.
// Matching is case-sensitive.
func FilterBySource(t Table, sources []string) Table {
	want := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		want[s] = struct{}{}
	}
	return t.filter(func(a *types.Article) bool {
		_, ok := want[a.Source]
		return ok
	})
}
