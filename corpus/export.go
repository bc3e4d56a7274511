package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"newscorpus/types"

	json "github.com/goccy/go-json"
)

// Format is an export encoding.
type Format string

const (
	// FormatJSONL writes one JSON object per line.
	FormatJSONL Format = "jsonl"
	// FormatJSON writes a single indented JSON array.
	FormatJSON Format = "json"
)

// ParseFormat accepts "jsonl" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSONL, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: got %q", types.ErrUnsupportedFormat, s)
	}
}

// WriteTable encodes t to w in the given format.
func WriteTable(w io.Writer, t Table, format Format) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	switch format {
	case FormatJSONL:
		for i := range t {
			if err := enc.Encode(&t[i]); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if t == nil {
			t = Table{}
		}
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	default:
		return fmt.Errorf("%w: got %q", types.ErrUnsupportedFormat, format)
	}
}

// Export writes t to filename, replacing any existing file. Filesystem
// failures are returned as *types.IOError.
func Export(t Table, filename string, format Format) (err error) {
	if format != FormatJSONL && format != FormatJSON {
		return fmt.Errorf("%w: got %q", types.ErrUnsupportedFormat, format)
	}

	f, err := os.Create(filename)
	if err != nil {
		return &types.IOError{Path: filename, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &types.IOError{Path: filename, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if err := WriteTable(w, t, format); err != nil {
		return &types.IOError{Path: filename, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &types.IOError{Path: filename, Err: err}
	}
	return nil
}
