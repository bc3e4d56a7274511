package config

import "fmt"

// Storage layout constants
const (
	// DefaultBucket holds the published corpus
	DefaultBucket = "immigration-discourse-dataset"

	// DefaultPrefix is the key prefix under which the article files live
	DefaultPrefix = "data/"

	// DefaultRegion is used when neither config nor environment name one
	DefaultRegion = "us-east-1"

	// FileCount is the number of file units in the corpus (indices 0-99)
	FileCount = 100

	// FileKeyFormat names one file unit relative to the prefix
	FileKeyFormat = "articles_%03d.jsonl"
)

// Loading and sampling defaults
const (
	// DefaultConcurrency bounds parallel file fetches during a load
	DefaultConcurrency = 4

	// DefaultSampleSize is the number of records drawn by a sample load
	DefaultSampleSize = 1000

	// DefaultSampleSeed makes sample loads reproducible
	DefaultSampleSeed = 42

	// DefaultTopSources is how many sources the stats summary ranks
	DefaultTopSources = 10
)

// Server defaults
const (
	// DefaultPort for the HTTP query API
	DefaultPort = "8080"

	// DefaultResultLimit caps article listings returned by the API
	DefaultResultLimit = 100
)

// FileName returns the object name for a file index, e.g. articles_007.jsonl
func FileName(index int) string {
	return fmt.Sprintf(FileKeyFormat, index)
}
