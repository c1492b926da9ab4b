// Package tokenizer turns raw document or query bytes into the normalized terms the
// inverted index and ranker operate on.
package tokenizer

const (
	minTokenLength  = 2
	maxTokenLength  = 15
	maxScanBytes    = 31
	maxTokensPerDoc = 100_000
)

// stopWords is the fixed exclusion set applied during tokenization.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {},
	"any": {}, "can": {}, "had": {}, "her": {}, "was": {}, "one": {}, "our": {}, "out": {},
	"day": {}, "get": {}, "has": {}, "him": {}, "his": {}, "how": {}, "man": {}, "new": {},
	"now": {}, "old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "boy": {}, "did": {},
	"its": {}, "let": {}, "put": {}, "say": {}, "she": {}, "too": {}, "use": {}, "may": {},
	"also": {}, "than": {}, "that": {}, "this": {}, "with": {}, "from": {}, "have": {},
	"were": {}, "been": {}, "they": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"will": {}, "your": {}, "their": {},
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func foldLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Tokenize scans a byte buffer linearly, splitting on runs of ASCII alphanumeric bytes.
// Each completed run is lowercased, length-gated to [2,15], checked against the stop-word
// set, and rejected if it is all digits. The returned slice's index is the token ordinal
// (0, 1, 2, ...) consumed by postings positions and the ranker's position weighting — it is
// not a byte offset into the source buffer.
//
// A single token's scan buffer is capped at 31 bytes: bytes beyond that cap are discarded
// but do not terminate the run, so a run longer than 31 bytes still reads as one (oversize,
// and therefore dropped) token rather than splitting into several. This mirrors the
// documented quirk rather than the more conventional "split at 31 bytes" behavior.
func Tokenize(data []byte) []string {
	tokens := make([]string, 0, 64)

	var buf [maxScanBytes]byte
	n := 0
	inRun := false

	flush := func() {
		if !inRun {
			return
		}
		inRun = false
		length := n
		n = 0
		if length < minTokenLength || length > maxTokenLength {
			return
		}
		term := string(buf[:length])
		if _, stop := stopWords[term]; stop {
			return
		}
		if isAllDigits(term) {
			return
		}
		tokens = append(tokens, term)
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		if isAlnum(b) {
			inRun = true
			if n < maxScanBytes {
				buf[n] = foldLower(b)
				n++
			}
			continue
		}
		flush()
		if len(tokens) >= maxTokensPerDoc {
			return tokens
		}
	}
	flush()

	if len(tokens) > maxTokensPerDoc {
		return tokens[:maxTokensPerDoc]
	}
	return tokens
}

// TokenizeString is a convenience wrapper for query strings and other in-memory text that
// isn't already a byte slice.
func TokenizeString(s string) []string {
	return Tokenize([]byte(s))
}
