package types

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when an export format is neither jsonl nor json
var ErrUnsupportedFormat = errors.New("format must be 'jsonl' or 'json'")

// IndexError reports a file index outside the corpus range
type IndexError struct {
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("file index %d out of range [0, %d]", e.Index, e.Max)
}

// NotFoundError reports a missing remote object for a file index
type NotFoundError struct {
	Index int
	Key   string
	Err   error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %d not found at %s", e.Index, e.Key)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError describes one line that could not be decoded as an article.
// Fetchers collect these as diagnostics instead of failing the whole file.
type ParseError struct {
	Key  string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Key, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidPatternError reports a search term that does not compile as a regular expression
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// DateError reports a date bound that could not be parsed
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected ISO-8601", e.Value)
}

// IOError reports a failure writing an export file
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CredentialError reports an authentication failure against the object store.
// It is fatal and never retried.
type CredentialError struct {
	Source string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("aws credentials: %v", e.Err)
	}
	return fmt.Sprintf("aws credentials (%s): %v", e.Source, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }
