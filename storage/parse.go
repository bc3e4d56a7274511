package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"newscorpus/types"

	json "github.com/goccy/go-json"
)

// maxLineSize bounds a single JSONL record; article bodies can exceed bufio's 64 KiB default.
const maxLineSize = 64 << 20

var errNotObject = errors.New("line is not a JSON object")

// FetchResult holds the parsed contents of one file unit
type FetchResult struct {
	Index    int
	Key      string
	Articles []types.Article
	// Skipped lists lines that could not be decoded; they are left out of Articles.
	Skipped []*types.ParseError
}

// ParseLines decodes one article per line. Malformed lines are recorded in
// Skipped and parsing continues; blank lines are ignored. Only a read failure
// aborts the parse.
func ParseLines(key string, r io.Reader) (*FetchResult, error) {
	result := &FetchResult{Key: key}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		article, err := decodeArticle(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, &types.ParseError{Key: key, Line: line, Err: err})
			continue
		}
		result.Articles = append(result.Articles, article)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s after line %d: %w", key, line, err)
	}
	return result, nil
}

func decodeArticle(raw []byte) (types.Article, error) {
	var a types.Article
	if raw[0] != '{' {
		return a, errNotObject
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, err
	}
	if a.Authors == nil {
		a.Authors = []string{}
	}
	return a, nil
}
