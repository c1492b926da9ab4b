// Package snippet extracts a short, human-readable excerpt from a document's full text to
// accompany a search hit.
package snippet

import "strings"

const (
	// windowRadius is how far before/after the earliest match a snippet extends.
	windowRadius = 200
	// minSnippetLength is the shortest acceptable window; shorter windows try the next match.
	minSnippetLength = 100
	// fallbackLength is the size of the snippet taken when no match position can be used.
	fallbackLength = 300
)

// Extract returns a window of content centered on the earliest occurrence (case-insensitive)
// of any term in terms. If the earliest match produces a window shorter than
// minSnippetLength, later matches are tried in turn. If no term is found at all, the snippet
// falls back to a fallbackLength window starting at the first alphabetic character, or
// failing that the first fallbackLength bytes of content (§4.6).
func Extract(content string, terms []string) string {
	if content == "" {
		return ""
	}

	lower := strings.ToLower(content)
	positions := matchPositions(lower, terms)

	for _, pos := range positions {
		start := pos - windowRadius
		if start < 0 {
			start = 0
		}
		end := pos + windowRadius
		if end > len(content) {
			end = len(content)
		}
		if end-start >= minSnippetLength || (start == 0 && end == len(content)) {
			return window(content, start, end)
		}
	}

	return fallback(content)
}

// window slices content[start:end] and adds a leading/trailing "..." marker wherever the
// window doesn't reach the corresponding edge of the document.
func window(content string, start, end int) string {
	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(content[start:end])
	if end < len(content) {
		b.WriteString("...")
	}
	return b.String()
}

// matchPositions returns the byte offset of the first occurrence of each term found in lower,
// sorted ascending, so callers can try the earliest match first and fall back to later ones.
func matchPositions(lower string, terms []string) []int {
	positions := make([]int, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(t)
		if t == "" {
			continue
		}
		if idx := strings.Index(lower, t); idx >= 0 {
			positions = append(positions, idx)
		}
	}
	sortInts(positions)
	return positions
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// fallback returns a fallbackLength window starting at the first alphabetic byte, or the
// first fallbackLength bytes of content if it contains no alphabetic byte at all.
func fallback(content string) string {
	start := 0
	for i := 0; i < len(content); i++ {
		b := content[i]
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			start = i
			break
		}
	}
	end := start + fallbackLength
	if end > len(content) {
		end = len(content)
	}
	return trim(content[start:end])
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
