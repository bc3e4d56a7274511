package corpus

import "newscorpus/types"

// Table is an ordered sequence of articles assembled from one or more file units.
type Table []types.Article

// Head returns at most the first n rows; n <= 0 returns the whole table.
func (t Table) Head(n int) Table {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

func (t Table) filter(keep func(a *types.Article) bool) Table {
	out := make(Table, 0)
	for i := range t {
		if keep(&t[i]) {
			out = append(out, t[i])
		}
	}
	return out
}
