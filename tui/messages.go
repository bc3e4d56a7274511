package tui

import "newscorpus/corpus"

// LoadedMsg carries the result of the initial load.
type LoadedMsg struct {
	Articles corpus.Table
	Err      error
}
