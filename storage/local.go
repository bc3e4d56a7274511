package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"newscorpus/common"
	"newscorpus/config"
	"newscorpus/logging"
	"newscorpus/types"

	"github.com/sirupsen/logrus"
)

// LocalFetcher reads file units from a directory holding a copy of the bucket layout
type LocalFetcher struct {
	dir string
	log *logrus.Entry
}

// NewLocalFetcher creates a fetcher over dir. A nil logger discards output.
func NewLocalFetcher(dir string, log logrus.FieldLogger) *LocalFetcher {
	if log == nil {
		log = logging.Discard()
	}
	return &LocalFetcher{dir: dir, log: logging.Service(log, "fetcher")}
}

// Location describes where file units are read from
func (f *LocalFetcher) Location() string {
	return f.dir
}

// Fetch reads and parses one file unit from disk
func (f *LocalFetcher) Fetch(ctx context.Context, index int) (*FetchResult, error) {
	if err := ValidateIndex(index); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.dir, config.FileName(index))
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.NotFoundError{Index: index, Key: path, Err: err}
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	result, err := ParseLines(config.FileName(index), file)
	if err != nil {
		return nil, err
	}
	result.Index = index
	reportSkipped(f.log, result)
	return result, nil
}

// Available lists the file indices present in the directory
func (f *LocalFetcher) Available(ctx context.Context) ([]int, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return indicesFromNames(names), nil
}

// Open builds the Source described by cfg: a LocalFetcher when LocalDir is
// set, otherwise an S3Fetcher using the configured credential source.
func Open(ctx context.Context, cfg *config.Config, prompter *config.Prompter, log logrus.FieldLogger) (Source, error) {
	if cfg.LocalDir != "" {
		return NewLocalFetcher(cfg.LocalDir, log), nil
	}

	creds, err := cfg.CredentialsProvider(prompter)
	if err != nil {
		return nil, err
	}

	client, err := common.NewS3(ctx, common.S3Config{
		Region:       cfg.Region,
		Profile:      cfg.Profile,
		Endpoint:     cfg.Endpoint,
		UsePathStyle: cfg.UsePathStyle,
		Credentials:  creds,
	})
	if err != nil {
		if cfg.Credentials == config.CredentialsProfile || common.IsAuthError(err) {
			return nil, &types.CredentialError{Source: string(cfg.Credentials), Err: err}
		}
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}
	return NewS3Fetcher(client, cfg.Bucket, cfg.Prefix, log), nil
}
