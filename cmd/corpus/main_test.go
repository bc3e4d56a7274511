package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFile0 = `{"source":"cnn.com","url":"https://cnn.com/1","title":"Border","header":"","text":"An illegal alien case","authors":["A"],"publish_date":"2023-01-10T08:00:00"}
{"source":"foxnews.com","url":"https://foxnews.com/2","title":"Policy","header":"","text":"Undocumented immigrant numbers","authors":[],"publish_date":"2023-03-02"}
{"source":"cnn.com","url":"https://cnn.com/3","title":"Asylum","header":"","text":"Asylum seekers","authors":[],"publish_date":null}
`

const testFile1 = `{"source":"npr.org","url":"https://npr.org/4","title":"Later","header":"","text":"illegal alien wording","authors":[],"publish_date":"2023-06-01"}
not json
`

func corpusDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{"articles_000.jsonl": testFile0, "articles_001.jsonl": testFile1} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, args...)
	return out, err
}

// runWithStderr also returns what the user sees on stderr: log lines and the
// rendered error.
func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CORPUS_CONFIG", "")
	t.Setenv("CORPUS_LOCAL_DIR", "")
	t.Setenv("CORPUS_CREDENTIALS", "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := execute(context.Background(), root, &errOut)
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "corpus dev") {
		t.Errorf("output = %q", out)
	}
}

func TestLoadCommand(t *testing.T) {
	out, err := run(t, "load", "--local-dir", corpusDir(t), "--files", "0-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, want := range []string{"Articles", "4", "1 malformed lines skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchCommand(t *testing.T) {
	dir := corpusDir(t)

	out, err := run(t, "search", "illegal alien", "--local-dir", dir, "--files", "0-1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, `2 articles match "illegal alien"`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "search", "illegal alien", "--local-dir", dir, "--files", "0-1", "--source", "npr.org")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "1 articles match") || !strings.Contains(out, "Later") {
		t.Errorf("unexpected filtered output:\n%s", out)
	}

	if _, err := run(t, "search", "(", "--local-dir", dir); err == nil {
		t.Error("invalid pattern should fail")
	}
	if _, err := run(t, "search", "(", "--literal", "--local-dir", dir); err != nil {
		t.Errorf("literal search failed: %v", err)
	}
}

func TestCountsCommand(t *testing.T) {
	out, err := run(t, "counts", "--local-dir", corpusDir(t), "--files", "0-1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	for _, want := range []string{"illegal alien", "2 (50.00%)", "undocumented immigrant", "1 (25.00%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "--local-dir", corpusDir(t), "--files", "0")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total articles", "2023-01-10 to 2023-03-02", "cnn.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.jsonl")
	if _, err := run(t, "export", target, "--local-dir", corpusDir(t), "--files", "0", "--term", "asylum"); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 1 {
		t.Errorf("exported %d lines, want 1", lines)
	}

	if _, err := run(t, "export", target, "--local-dir", corpusDir(t), "--format", "csv"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestSampleCommand(t *testing.T) {
	dir := corpusDir(t)
	first, err := run(t, "sample", "--local-dir", dir, "-n", "2", "--seed", "3")
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	second, _ := run(t, "sample", "--local-dir", dir, "-n", "2", "--seed", "3")
	if first != second {
		t.Errorf("samples differ:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, "Sample of 2 articles") {
		t.Errorf("unexpected output:\n%s", first)
	}
}

func TestFilesCommand(t *testing.T) {
	out, err := run(t, "files", "--local-dir", corpusDir(t))
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	if !strings.Contains(out, "articles_000.jsonl") || !strings.Contains(out, "articles_001.jsonl") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestBadFileSelection(t *testing.T) {
	if _, err := run(t, "load", "--local-dir", corpusDir(t), "--files", "0-100"); err == nil {
		t.Error("out of range selection should fail")
	}
	if _, err := run(t, "load", "--local-dir", corpusDir(t), "--files", "5"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestFormatCount(t *testing.T) {
	cases := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"}
	for in, want := range cases {
		if got := formatCount(in); got != want {
			t.Errorf("formatCount(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestErrorsAreShown(t *testing.T) {
	dir := corpusDir(t)

	cases := []struct {
		args []string
		want []string
	}{
		{[]string{"load", "--local-dir", dir, "--files", "5"}, []string{"Error: loading file 5", "articles_005.jsonl"}},
		{[]string{"search", "(", "--local-dir", dir}, []string{"Error:", `"("`}},
		{[]string{"stats", "--local-dir", dir, "--start", "2023-13-45"}, []string{"Error:", "2023-13-45"}},
		{[]string{"load", "--local-dir", dir, "--files", "0-100"}, []string{"Error:", "100"}},
	}
	for _, tc := range cases {
		_, stderr, err := runWithStderr(t, tc.args...)
		if err == nil {
			t.Errorf("%v: expected an error", tc.args)
			continue
		}
		for _, want := range tc.want {
			if !strings.Contains(stderr, want) {
				t.Errorf("%v: stderr missing %q:\n%s", tc.args, want, stderr)
			}
		}
	}
}

func TestStatsRejectsNegativeTop(t *testing.T) {
	_, stderr, err := runWithStderr(t, "stats", "--local-dir", corpusDir(t), "--files", "0", "--top", "-1")
	if err == nil {
		t.Fatal("negative --top should fail")
	}
	if !strings.Contains(stderr, "--top must not be negative") {
		t.Errorf("stderr missing validation message:\n%s", stderr)
	}

	out, err := run(t, "stats", "--local-dir", corpusDir(t), "--files", "0", "--top", "0")
	if err != nil {
		t.Fatalf("--top 0: %v", err)
	}
	if !strings.Contains(out, "Top 0 sources") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
