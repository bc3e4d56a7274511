package corpus

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"newscorpus/config"

	json "github.com/goccy/go-json"
)

// Stats summarizes a table.
type Stats struct {
	TotalArticles int `json:"total_articles"`
	UniqueSources int `json:"unique_sources"`
	// DateRange is nil when no article has a parseable date.
	DateRange         *DateRange    `json:"date_range"`
	TopSources        []SourceCount `json:"top_sources"`
	ArticlesWithDates int           `json:"articles_with_dates"`
	AvgTextLength     float64       `json:"avg_text_length"`
}

// DateRange is the earliest and latest parseable publish date.
type DateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// Days formats both ends as YYYY-MM-DD.
func (r DateRange) Days() (string, string) {
	return r.Min.Format(time.DateOnly), r.Max.Format(time.DateOnly)
}

type dateRangeJSON struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// MarshalJSON encodes both ends as YYYY-MM-DD strings.
func (r DateRange) MarshalJSON() ([]byte, error) {
	lo, hi := r.Days()
	return json.Marshal(dateRangeJSON{Min: lo, Max: hi})
}

// UnmarshalJSON reads the YYYY-MM-DD form written by MarshalJSON.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lo, err := time.Parse(time.DateOnly, raw.Min)
	if err != nil {
		return fmt.Errorf("date range min: %w", err)
	}
	hi, err := time.Parse(time.DateOnly, raw.Max)
	if err != nil {
		return fmt.Errorf("date range max: %w", err)
	}
	r.Min, r.Max = lo, hi
	return nil
}

// SourceCount is the number of articles from one source.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// GetStats computes the summary for t. TopSources holds the ten largest sources.
func GetStats(t Table) Stats {
	ranked := RankSources(t)
	stats := Stats{
		TotalArticles: len(t),
		UniqueSources: len(ranked),
		TopSources:    ranked,
	}
	if len(ranked) > config.DefaultTopSources {
		stats.TopSources = ranked[:config.DefaultTopSources]
	}

	var textLen int
	for i := range t {
		textLen += utf8.RuneCountInString(t[i].Text)

		published, ok := t[i].PublishedAt()
		if !ok {
			continue
		}
		stats.ArticlesWithDates++
		if stats.DateRange == nil {
			stats.DateRange = &DateRange{Min: published, Max: published}
			continue
		}
		if published.Before(stats.DateRange.Min) {
			stats.DateRange.Min = published
		}
		if published.After(stats.DateRange.Max) {
			stats.DateRange.Max = published
		}
	}
	if len(t) > 0 {
		stats.AvgTextLength = float64(textLen) / float64(len(t))
	}
	return stats
}

// RankSources counts articles per source, ordered by count descending and
// then by source name ascending.
func RankSources(t Table) []SourceCount {
	counts := make(map[string]int)
	for i := range t {
		counts[t[i].Source]++
	}

	ranked := make([]SourceCount, 0, len(counts))
	for source, n := range counts {
		ranked = append(ranked, SourceCount{Source: source, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Source < ranked[j].Source
	})
	return ranked
}
