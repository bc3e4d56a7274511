// Package corpus caches parsed file units by index and answers queries over
// the combined article tables.
package corpus

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"newscorpus/config"
	"newscorpus/logging"
	"newscorpus/storage"
	"newscorpus/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Option mutates cache configuration.
type Option func(*Cache)

// WithLogger injects the logger used for load progress.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = logging.Service(log, "corpus")
		}
	}
}

// WithConcurrency bounds how many file units are fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithSampleFiles sets the baseline files LoadSample draws from.
func WithSampleFiles(indices ...int) Option {
	return func(c *Cache) {
		if len(indices) > 0 {
			c.sampleFiles = append([]int(nil), indices...)
		}
	}
}

// LoadOption adjusts a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	forceReload bool
	noCache     bool
}

// WithForceReload refetches every requested file and overwrites its cache entry.
func WithForceReload() LoadOption {
	return func(o *loadOptions) { o.forceReload = true }
}

// WithoutCache fetches every requested file and leaves the cache untouched.
func WithoutCache() LoadOption {
	return func(o *loadOptions) { o.noCache = true }
}

// Cache maps file indices to parsed articles for the lifetime of the value.
// Entries never change unless a load forces a reload of that index or the
// cache is cleared.
//
// Cache is safe for concurrent use. Each index has its own lock, so a file
// is fetched at most once however many callers request it at the same time.
type Cache struct {
	fetcher     storage.Fetcher
	log         *logrus.Entry
	concurrency int
	sampleFiles []int

	mu      sync.Mutex
	entries map[int]*entry
}

type entry struct {
	mu       sync.Mutex
	loaded   bool
	articles []types.Article
	skipped  []*types.ParseError
}

// EntryInfo summarizes one cached file unit
type EntryInfo struct {
	Index    int `json:"index"`
	Articles int `json:"articles"`
	Skipped  int `json:"skipped_lines"`
}

// NewCache creates an empty cache backed by fetcher.
func NewCache(fetcher storage.Fetcher, options ...Option) *Cache {
	c := &Cache{
		fetcher:     fetcher,
		log:         logging.Service(logging.Discard(), "corpus"),
		concurrency: config.DefaultConcurrency,
		sampleFiles: []int{0},
		entries:     make(map[int]*entry),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// AllIndices returns every file index in ascending order.
func AllIndices() []int {
	out := make([]int, config.FileCount)
	for i := range out {
		out[i] = i
	}
	return out
}

// Load returns the articles of the requested files concatenated in request
// order. A nil slice requests every file in ascending order. Cached files are
// reused; missing ones are fetched in parallel and cached. The first fetch
// error aborts the load.
//
// Returned tables share author slices with the cache and must be treated as
// read-only.
func (c *Cache) Load(ctx context.Context, indices []int, opts ...LoadOption) (Table, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if indices == nil {
		indices = AllIndices()
	}

	positions := make(map[int]int, len(indices))
	var unique []int
	for _, idx := range indices {
		if err := storage.ValidateIndex(idx); err != nil {
			return nil, err
		}
		if _, ok := positions[idx]; !ok {
			positions[idx] = len(unique)
			unique = append(unique, idx)
		}
	}

	parts := make([][]types.Article, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for pos, idx := range unique {
		g.Go(func() error {
			articles, err := c.resolve(gctx, idx, o)
			if err != nil {
				return fmt.Errorf("loading file %d: %w", idx, err)
			}
			parts[pos] = articles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, idx := range indices {
		total += len(parts[positions[idx]])
	}
	table := make(Table, 0, total)
	for _, idx := range indices {
		table = append(table, parts[positions[idx]]...)
	}

	if total > 0 {
		c.log.WithFields(logrus.Fields{"files": len(indices), "articles": total}).Info("load complete")
	}
	return table, nil
}

func (c *Cache) resolve(ctx context.Context, index int, o loadOptions) ([]types.Article, error) {
	if o.noCache {
		result, err := c.fetcher.Fetch(ctx, index)
		if err != nil {
			return nil, err
		}
		c.logFile("loaded", result.Key, len(result.Articles), len(result.Skipped))
		return result.Articles, nil
	}

	e := c.entry(index)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded && !o.forceReload {
		c.logFile("cached", config.FileName(index), len(e.articles), len(e.skipped))
		return e.articles, nil
	}

	result, err := c.fetcher.Fetch(ctx, index)
	if err != nil {
		return nil, err
	}
	e.articles = result.Articles
	e.skipped = result.Skipped
	e.loaded = true

	c.logFile("loaded", result.Key, len(result.Articles), len(result.Skipped))
	return e.articles, nil
}

func (c *Cache) logFile(action, file string, articles, skipped int) {
	fields := logrus.Fields{"file": file, "articles": articles}
	if skipped > 0 {
		fields["skipped_lines"] = skipped
	}
	c.log.WithFields(fields).Info(action)
}

func (c *Cache) entry(index int) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[index]
	if !ok {
		e = &entry{}
		c.entries[index] = e
	}
	return e
}

// snapshot returns the current entry set without holding entry locks.
func (c *Cache) snapshot() map[int]*entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]*entry, len(c.entries))
	for idx, e := range c.entries {
		out[idx] = e
	}
	return out
}

// Entries describes every loaded file unit, ordered by index.
func (c *Cache) Entries() []EntryInfo {
	var out []EntryInfo
	for idx, e := range c.snapshot() {
		e.mu.Lock()
		if e.loaded {
			out = append(out, EntryInfo{Index: idx, Articles: len(e.articles), Skipped: len(e.skipped)})
		}
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Indices returns the loaded file indices in ascending order.
func (c *Cache) Indices() []int {
	entries := c.Entries()
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

// Len returns the number of loaded file units.
func (c *Cache) Len() int {
	return len(c.Entries())
}

// Skipped returns the malformed-line diagnostics recorded when index was loaded.
func (c *Cache) Skipped(index int) []*types.ParseError {
	c.mu.Lock()
	e, ok := c.entries[index]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*types.ParseError(nil), e.skipped...)
}

// Clear drops every entry and returns how many loaded files were dropped.
// Later loads fetch again.
func (c *Cache) Clear() int {
	n := c.Len()

	c.mu.Lock()
	c.entries = make(map[int]*entry)
	c.mu.Unlock()

	c.log.WithField("files", n).Info("cache cleared")
	return n
}
