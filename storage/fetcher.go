package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"newscorpus/common"
	"newscorpus/config"
	"newscorpus/logging"
	"newscorpus/types"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves and parses one file unit
type Fetcher interface {
	Fetch(ctx context.Context, index int) (*FetchResult, error)
}

// Source is a Fetcher that can also enumerate the file units it holds
type Source interface {
	Fetcher
	Available(ctx context.Context) ([]int, error)
	Location() string
}

// ObjectStore describes the S3 operations the fetcher needs; *common.S3 satisfies it.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// ValidateIndex rejects indices outside the corpus range
func ValidateIndex(index int) error {
	if index < 0 || index >= config.FileCount {
		return &types.IndexError{Index: index, Max: config.FileCount - 1}
	}
	return nil
}

// S3Fetcher reads file units from a bucket/prefix
type S3Fetcher struct {
	store  ObjectStore
	bucket string
	prefix string
	log    *logrus.Entry
}

// NewS3Fetcher creates a fetcher over store. A nil logger discards output.
func NewS3Fetcher(store ObjectStore, bucket, prefix string, log logrus.FieldLogger) *S3Fetcher {
	if log == nil {
		log = logging.Discard()
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	return &S3Fetcher{
		store:  store,
		bucket: bucket,
		prefix: prefix,
		log:    logging.Service(log, "fetcher"),
	}
}

// Key returns the object key for a file index
func (f *S3Fetcher) Key(index int) string {
	return f.prefix + config.FileName(index)
}

// Location describes where file units are read from
func (f *S3Fetcher) Location() string {
	return "s3://" + f.bucket + "/" + f.prefix
}

// Fetch downloads and parses one file unit. Missing objects return
// *types.NotFoundError and rejected credentials *types.CredentialError.
func (f *S3Fetcher) Fetch(ctx context.Context, index int) (*FetchResult, error) {
	if err := ValidateIndex(index); err != nil {
		return nil, err
	}
	key := f.Key(index)

	body, err := f.store.Get(ctx, f.bucket, key)
	if err != nil {
		return nil, classifyError(index, key, err)
	}
	defer body.Close()

	result, err := ParseLines(key, body)
	if err != nil {
		return nil, classifyError(index, key, err)
	}
	result.Index = index
	reportSkipped(f.log, result)
	return result, nil
}

// Available lists the file indices present under the prefix
func (f *S3Fetcher) Available(ctx context.Context) ([]int, error) {
	keys, err := f.store.ListKeys(ctx, f.bucket, f.prefix)
	if err != nil {
		if common.IsAuthError(err) {
			return nil, &types.CredentialError{Source: "s3", Err: err}
		}
		return nil, fmt.Errorf("listing %s: %w", f.Location(), err)
	}
	return indicesFromNames(keys), nil
}

func classifyError(index int, key string, err error) error {
	switch {
	case common.IsNotFound(err):
		return &types.NotFoundError{Index: index, Key: key, Err: err}
	case common.IsAuthError(err):
		return &types.CredentialError{Source: "s3", Err: err}
	default:
		return fmt.Errorf("fetching %s: %w", key, err)
	}
}

func reportSkipped(log *logrus.Entry, result *FetchResult) {
	if len(result.Skipped) == 0 {
		return
	}
	first := result.Skipped[0]
	log.WithFields(logrus.Fields{
		"file":       result.Key,
		"skipped":    len(result.Skipped),
		"first_line": first.Line,
	}).Warnf("skipped malformed lines: %v", first.Err)
}

// indicesFromNames extracts sorted, unique file indices from object keys or
// file names; names that do not follow the articles_NNN.jsonl layout are ignored.
func indicesFromNames(names []string) []int {
	seen := make(map[int]bool)
	var out []int
	for _, name := range names {
		base := path.Base(name)
		if !strings.HasPrefix(base, "articles_") || !strings.HasSuffix(base, ".jsonl") {
			continue
		}
		digits := strings.TrimSuffix(strings.TrimPrefix(base, "articles_"), ".jsonl")
		i, err := strconv.Atoi(digits)
		if err != nil || ValidateIndex(i) != nil || config.FileName(i) != base || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
