package corpus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"newscorpus/config"
	"newscorpus/storage"
	"newscorpus/types"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// regexp2 keeps a shared clock goroutine alive once a match timeout is set
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/dlclark/regexp2.runClock"))
}

// fakeFetcher serves generated files and counts fetches per index.
type fakeFetcher struct {
	mu      sync.Mutex
	files   map[int][]types.Article
	skipped map[int][]*types.ParseError
	calls   map[int]int
	delay   time.Duration
	errs    map[int]error
}

func newFakeFetcher(indices ...int) *fakeFetcher {
	f := &fakeFetcher{
		files:   make(map[int][]types.Article),
		skipped: make(map[int][]*types.ParseError),
		calls:   make(map[int]int),
		errs:    make(map[int]error),
	}
	for _, idx := range indices {
		f.files[idx] = fileArticles(idx, 3)
	}
	return f
}

func fileArticles(index, n int) []types.Article {
	out := make([]types.Article, n)
	for i := range out {
		out[i] = types.Article{
			Source:      fmt.Sprintf("source%d.com", i%2),
			URL:         fmt.Sprintf("https://example.com/%d/%d", index, i),
			Title:       fmt.Sprintf("file %d article %d", index, i),
			Text:        fmt.Sprintf("text of file %d article %d", index, i),
			Authors:     []string{},
			PublishDate: fmt.Sprintf("2023-01-%02dT00:00:00", i+1),
		}
	}
	return out
}

func (f *fakeFetcher) Fetch(ctx context.Context, index int) (*storage.FetchResult, error) {
	if err := storage.ValidateIndex(index); err != nil {
		return nil, err
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[index]++
	if err, ok := f.errs[index]; ok {
		return nil, err
	}
	articles, ok := f.files[index]
	if !ok {
		return nil, &types.NotFoundError{Index: index, Key: config.FileName(index)}
	}
	return &storage.FetchResult{
		Index:    index,
		Key:      config.FileName(index),
		Articles: append([]types.Article(nil), articles...),
		Skipped:  f.skipped[index],
	}, nil
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeFetcher) callsFor(index int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[index]
}

func urls(t Table) []string {
	out := make([]string, len(t))
	for i := range t {
		out[i] = t[i].URL
	}
	return out
}

func TestLoadPreservesRequestOrder(t *testing.T) {
	fetcher := newFakeFetcher(0, 1, 2)
	cache := NewCache(fetcher, WithConcurrency(3))

	table, err := cache.Load(context.Background(), []int{2, 0})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var want []string
	for _, idx := range []int{2, 0} {
		for _, a := range fetcher.files[idx] {
			want = append(want, a.URL)
		}
	}
	if diff := cmp.Diff(want, urls(table)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWarmCacheIssuesNoFetches(t *testing.T) {
	fetcher := newFakeFetcher(0, 1, 2)
	cache := NewCache(fetcher)

	first, err := cache.Load(context.Background(), []int{0, 1, 2})
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if got := fetcher.totalCalls(); got != 3 {
		t.Fatalf("expected 3 fetches, got %d", got)
	}

	second, err := cache.Load(context.Background(), []int{0, 1, 2})
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if got := fetcher.totalCalls(); got != 3 {
		t.Errorf("warm load issued %d extra fetches", got-3)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("warm load changed result (-first +second):\n%s", diff)
	}
}

func TestLoadUnionMatchesSeparateLoads(t *testing.T) {
	fetcher := newFakeFetcher(0, 1, 2, 3, 4)
	a := []int{0, 3}
	b := []int{4, 1}

	union, err := NewCache(fetcher).Load(context.Background(), append(append([]int{}, a...), b...))
	if err != nil {
		t.Fatalf("union Load: %v", err)
	}

	cache := NewCache(fetcher)
	left, err := cache.Load(context.Background(), a)
	if err != nil {
		t.Fatalf("Load(a): %v", err)
	}
	right, err := cache.Load(context.Background(), b)
	if err != nil {
		t.Fatalf("Load(b): %v", err)
	}

	got := urls(union)
	want := append(urls(left), urls(right)...)
	sort.Strings(got)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("multiset mismatch (-want +got):\n%s", diff)
	}
}

func TestClearThenLoadFetchesOnce(t *testing.T) {
	fetcher := newFakeFetcher(0, 7)
	cache := NewCache(fetcher)

	if _, err := cache.Load(context.Background(), []int{0, 7}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := cache.Clear(); n != 2 {
		t.Errorf("Clear returned %d, want 2", n)
	}
	if cache.Len() != 0 {
		t.Errorf("Len after Clear = %d", cache.Len())
	}

	if _, err := cache.Load(context.Background(), []int{7}); err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if got := fetcher.callsFor(7); got != 2 {
		t.Errorf("index 7 fetched %d times in total, want 2", got)
	}
	if got := fetcher.callsFor(0); got != 1 {
		t.Errorf("index 0 refetched without being requested")
	}
}

func TestLoadForceReloadOverwrites(t *testing.T) {
	fetcher := newFakeFetcher(3)
	cache := NewCache(fetcher)

	if _, err := cache.Load(context.Background(), []int{3}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	fetcher.mu.Lock()
	fetcher.files[3] = fileArticles(3, 5)
	fetcher.mu.Unlock()

	cached, err := cache.Load(context.Background(), []int{3})
	if err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if len(cached) != 3 {
		t.Errorf("cached entry changed without reload: %d articles", len(cached))
	}

	reloaded, err := cache.Load(context.Background(), []int{3}, WithForceReload())
	if err != nil {
		t.Fatalf("forced Load: %v", err)
	}
	if len(reloaded) != 5 {
		t.Errorf("force reload returned %d articles, want 5", len(reloaded))
	}
	if got := fetcher.callsFor(3); got != 2 {
		t.Errorf("fetch count = %d, want 2", got)
	}

	again, err := cache.Load(context.Background(), []int{3})
	if err != nil {
		t.Fatalf("Load after reload: %v", err)
	}
	if len(again) != 5 {
		t.Errorf("reloaded entry not cached: %d articles", len(again))
	}
}

func TestLoadWithoutCacheLeavesCacheEmpty(t *testing.T) {
	fetcher := newFakeFetcher(1)
	cache := NewCache(fetcher)

	for i := 0; i < 2; i++ {
		if _, err := cache.Load(context.Background(), []int{1}, WithoutCache()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	if got := fetcher.callsFor(1); got != 2 {
		t.Errorf("fetch count = %d, want 2", got)
	}
	if cache.Len() != 0 {
		t.Errorf("uncached load stored %d entries", cache.Len())
	}
}

func TestLoadDuplicateIndicesFetchOnce(t *testing.T) {
	fetcher := newFakeFetcher(1)
	cache := NewCache(fetcher)

	table, err := cache.Load(context.Background(), []int{1, 1}, WithForceReload())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table) != 6 {
		t.Errorf("expected both copies concatenated, got %d articles", len(table))
	}
	if got := fetcher.callsFor(1); got != 1 {
		t.Errorf("fetch count = %d, want 1", got)
	}
}

func TestLoadNilRequestsEveryFile(t *testing.T) {
	fetcher := newFakeFetcher(AllIndices()...)
	cache := NewCache(fetcher, WithConcurrency(8))

	table, err := cache.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table) != config.FileCount*3 {
		t.Errorf("got %d articles, want %d", len(table), config.FileCount*3)
	}
	if table[0].URL != "https://example.com/0/0" || table[len(table)-1].URL != "https://example.com/99/2" {
		t.Errorf("expected ascending index order, first=%s last=%s", table[0].URL, table[len(table)-1].URL)
	}
	if diff := cmp.Diff(AllIndices(), cache.Indices()); diff != "" {
		t.Errorf("cached indices mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cache := NewCache(newFakeFetcher(0))
		_, err := cache.Load(context.Background(), []int{0, 5})
		var nf *types.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nf.Index != 5 {
			t.Errorf("NotFoundError index = %d, want 5", nf.Index)
		}
	})

	t.Run("credentials", func(t *testing.T) {
		fetcher := newFakeFetcher(0)
		fetcher.errs[0] = &types.CredentialError{Source: "s3", Err: errors.New("InvalidAccessKeyId")}
		_, err := NewCache(fetcher).Load(context.Background(), []int{0})
		var ce *types.CredentialError
		if !errors.As(err, &ce) {
			t.Fatalf("expected CredentialError, got %v", err)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		fetcher := newFakeFetcher(0)
		_, err := NewCache(fetcher).Load(context.Background(), []int{0, 100})
		var ie *types.IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("expected IndexError, got %v", err)
		}
		if fetcher.totalCalls() != 0 {
			t.Errorf("invalid request still fetched %d files", fetcher.totalCalls())
		}
	})

	t.Run("failed fetch is not cached", func(t *testing.T) {
		fetcher := newFakeFetcher()
		cache := NewCache(fetcher)
		if _, err := cache.Load(context.Background(), []int{2}); err == nil {
			t.Fatal("expected error")
		}
		if cache.Len() != 0 {
			t.Errorf("failed fetch left %d entries", cache.Len())
		}
	})
}

func TestConcurrentLoadsFetchEachIndexOnce(t *testing.T) {
	fetcher := newFakeFetcher(0, 1, 2, 3, 4)
	fetcher.delay = 10 * time.Millisecond
	cache := NewCache(fetcher, WithConcurrency(5))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := cache.Load(context.Background(), []int{4, 3, 2, 1, 0})
			if err != nil {
				errs <- err
				return
			}
			if table[0].URL != "https://example.com/4/0" {
				errs <- fmt.Errorf("order broken: first url %s", table[0].URL)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	for idx := 0; idx < 5; idx++ {
		if got := fetcher.callsFor(idx); got != 1 {
			t.Errorf("index %d fetched %d times, want 1", idx, got)
		}
	}
}

func TestEntriesReportSkippedLines(t *testing.T) {
	fetcher := newFakeFetcher(0, 1)
	fetcher.skipped[1] = []*types.ParseError{{Key: "articles_001.jsonl", Line: 4, Err: errors.New("bad json")}}
	cache := NewCache(fetcher)

	if _, err := cache.Load(context.Background(), []int{1, 0}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []EntryInfo{
		{Index: 0, Articles: 3, Skipped: 0},
		{Index: 1, Articles: 3, Skipped: 1},
	}
	if diff := cmp.Diff(want, cache.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	skipped := cache.Skipped(1)
	if len(skipped) != 1 || skipped[0].Line != 4 {
		t.Errorf("unexpected skipped diagnostics: %v", skipped)
	}
	if cache.Skipped(9) != nil {
		t.Error("expected nil diagnostics for an unloaded index")
	}
}

func TestLoadSampleIsReproducible(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files[0] = fileArticles(0, 50)
	cache := NewCache(fetcher)

	first, err := cache.LoadSample(context.Background(), 5, 42)
	if err != nil {
		t.Fatalf("LoadSample: %v", err)
	}
	second, err := cache.LoadSample(context.Background(), 5, 42)
	if err != nil {
		t.Fatalf("LoadSample: %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("sample size = %d, want 5", len(first))
	}
	if diff := cmp.Diff(urls(first), urls(second)); diff != "" {
		t.Errorf("same seed gave different samples (-first +second):\n%s", diff)
	}
	if fetcher.callsFor(0) != 1 {
		t.Errorf("baseline file fetched %d times, want 1", fetcher.callsFor(0))
	}

	seen := make(map[string]bool)
	for _, u := range urls(first) {
		if seen[u] {
			t.Errorf("sample drew %s twice", u)
		}
		seen[u] = true
	}

	other, err := cache.LoadSample(context.Background(), 5, 7)
	if err != nil {
		t.Fatalf("LoadSample: %v", err)
	}
	if cmp.Equal(urls(first), urls(other)) {
		t.Errorf("different seeds produced identical samples")
	}
}

func TestSampleBounds(t *testing.T) {
	table := Table(fileArticles(0, 4))
	if got := Sample(table, 10, 1); len(got) != 4 {
		t.Errorf("oversized sample returned %d rows, want 4", len(got))
	}
	if got := Sample(table, 0, 1); len(got) != 0 {
		t.Errorf("empty sample returned %d rows", len(got))
	}
	if got := Sample(nil, 3, 1); len(got) != 0 {
		t.Errorf("sample of empty table returned %d rows", len(got))
	}
}

func TestLoadSampleUsesConfiguredFiles(t *testing.T) {
	fetcher := newFakeFetcher(0, 9)
	cache := NewCache(fetcher, WithSampleFiles(9))

	sample, err := cache.LoadSample(context.Background(), 2, 42)
	if err != nil {
		t.Fatalf("LoadSample: %v", err)
	}
	for _, a := range sample {
		if a.URL[:len("https://example.com/9/")] != "https://example.com/9/" {
			t.Errorf("sample drew from wrong file: %s", a.URL)
		}
	}
	if fetcher.callsFor(0) != 0 {
		t.Error("default sample file fetched despite override")
	}
}
