package corpus

import (
	"fmt"
	"time"

	"newscorpus/types"

	"github.com/dlclark/regexp2"
)

// matchTimeout stops pathological patterns from stalling a search.
const matchTimeout = 10 * time.Second

// Matcher tests article text against a compiled search term.
type Matcher struct {
	term string
	re   *regexp2.Regexp
}

// CompileTerm compiles term as a regular expression. Terms are always
// patterns: "U.S." also matches "USA" and "(" is a syntax error. Use
// EscapeTerm to search for literal text.
func CompileTerm(term string, caseSensitive bool) (*Matcher, error) {
	var opts regexp2.RegexOptions
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(term, opts)
	if err != nil {
		return nil, &types.InvalidPatternError{Pattern: term, Err: err}
	}
	re.MatchTimeout = matchTimeout
	return &Matcher{term: term, re: re}, nil
}

// EscapeTerm quotes every pattern metacharacter in s.
func EscapeTerm(s string) string {
	return regexp2.Escape(s)
}

// Match reports whether the article text contains a match.
func (m *Matcher) Match(a *types.Article) (bool, error) {
	ok, err := m.re.MatchString(a.Text)
	if err != nil {
		return false, fmt.Errorf("matching %q: %w", m.term, err)
	}
	return ok, nil
}

func (m *Matcher) count(t Table) (int, error) {
	n := 0
	for i := range t {
		ok, err := m.Match(&t[i])
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// SearchTerm returns the articles whose text matches term, in table order.
// Matching ignores case unless caseSensitive is set. A malformed pattern
// returns *types.InvalidPatternError.
func SearchTerm(t Table, term string, caseSensitive bool) (Table, error) {
	m, err := CompileTerm(term, caseSensitive)
	if err != nil {
		return nil, err
	}

	out := make(Table, 0)
	for i := range t {
		ok, err := m.Match(&t[i])
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t[i])
		}
	}
	return out, nil
}

// TermCount is the number and share of articles matching one term.
type TermCount struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TermCounts counts, for each term independently, the articles SearchTerm
// would return with case-insensitive matching. Percentage is relative to the
// whole table and is 0 for an empty table.
func TermCounts(t Table, terms []string) (map[string]TermCount, error) {
	results := make(map[string]TermCount, len(terms))
	for _, term := range terms {
		m, err := CompileTerm(term, false)
		if err != nil {
			return nil, err
		}
		n, err := m.count(t)
		if err != nil {
			return nil, err
		}

		tc := TermCount{Count: n}
		if len(t) > 0 {
			tc.Percentage = float64(n) * 100 / float64(len(t))
		}
		results[term] = tc
	}
	return results, nil
}
