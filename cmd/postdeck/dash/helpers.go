package dash

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// truncate shortens s to max runes, appending an ellipsis when trimmed.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// clampCursor keeps a cursor valid for a list of length n.
func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func viewportSized(w, h int) viewport.Model {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return viewport.New(w, h)
}
