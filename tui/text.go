package tui

// UI text
const (
	TextTitle        = "News Corpus Browser"
	TextLoading      = "Loading articles..."
	TextEmpty        = "No articles match."
	TextFooterList   = "↑/↓ move | pgup/pgdn page | enter open | q quit"
	TextFooterDetail = "esc back | ←/→ previous/next | q quit"
	TextFooterError  = "q quit"
)
