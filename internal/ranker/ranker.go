// Package ranker scores documents against a tokenized query: TF·IDF, positional weighting,
// filename/title boosts, an exact-phrase bonus, and document-length normalization, combined
// into one deterministic descending order.
package ranker

import (
	"math"
	"sort"
	"strings"

	"github.com/kestrelsearch/textsearch/index"
	"github.com/kestrelsearch/textsearch/model"
	"github.com/kestrelsearch/textsearch/store"
)

// scoreTieTolerance is the float comparison tolerance used when breaking ties on Score
// during the final sort (§4.4.7): scores within this tolerance of each other fall through
// to comparing TotalOccurrences instead of treating floating-point noise as a real ordering.
const scoreTieTolerance = 1e-4

// minScoreThreshold filters out documents whose accumulated score rounds to zero.
const minScoreThreshold = 1e-6

// minTitleTermLength is the shortest query term considered for filename/title matching.
const minTitleTermLength = 3

// titleLeadingBytes is the filename-byte-offset boundary for the "near the front" bonus.
const titleLeadingBytes = 20

// Ranker computes ranked result sets for a single built index.
type Ranker struct {
	index *index.InvertedIndex
	docs  *store.DocumentStore
}

// New returns a Ranker reading from the given index and document store. Both must already
// be fully built; the Ranker never mutates them.
func New(invIndex *index.InvertedIndex, docStore *store.DocumentStore) *Ranker {
	return &Ranker{index: invIndex, docs: docStore}
}

// Rank scores every document matching qTerms, sorts the result descending per §4.4.7, and
// returns the full (unpaginated) ranked slice. exactPhrase is the lowercased original query
// string, consulted only when qTerms has at least two tokens.
func (r *Ranker) Rank(qTerms []string, exactPhrase string) []Result {
	if len(qTerms) == 0 {
		return nil
	}

	r.docs.Mu.RLock()
	totalDocs := len(r.docs.Docs)
	docsSnapshot := r.docs.Docs
	r.docs.Mu.RUnlock()

	if totalDocs == 0 {
		return nil
	}

	exactPhraseDocs := r.findExactPhraseDocs(qTerms, exactPhrase, docsSnapshot)
	titleBoost, hasTitleMatch := r.findTitleMatches(qTerms, docsSnapshot)

	distinctTerms := dedupe(qTerms)
	idf := make(map[string]float64, len(distinctTerms))
	for _, t := range distinctTerms {
		idf[t] = r.idf(t, totalDocs)
	}

	docScores := make(map[uint32]float64)
	docOccurrences := make(map[uint32]int)

	for _, term := range distinctTerms {
		postings, ok := r.index.Postings(term)
		if !ok {
			continue
		}
		termIDF := idf[term]
		for _, p := range postings {
			doc, ok := docsSnapshot[p.DocID]
			if !ok {
				continue
			}
			base := r.postingScore(p, termIDF, doc.TotalTokens)

			if hasTitleMatch[p.DocID] {
				base *= 10 + 5*titleBoost[p.DocID]
			}
			if exactPhraseDocs[p.DocID] {
				base *= 5
			}
			if p.Freq > 10 {
				damp := 1 + math.Log(float64(p.Freq))/5
				if damp > 3 {
					damp = 3
				}
				base *= damp
			}

			docScores[p.DocID] += base
			docOccurrences[p.DocID] += p.Freq
		}
	}

	results := make([]Result, 0, len(docScores))
	for docID, score := range docScores {
		doc, ok := docsSnapshot[docID]
		if !ok {
			continue
		}
		score = normalizeForLength(score, doc.TotalTokens)
		if hasTitleMatch[docID] {
			score *= 1 + titleBoost[docID]
		}
		if score <= minScoreThreshold {
			continue
		}
		results = append(results, Result{
			DocID:            docID,
			Score:            score,
			TotalOccurrences: docOccurrences[docID],
			InTitle:          hasTitleMatch[docID],
			ExactPhraseMatch: exactPhraseDocs[docID],
			TitleBoost:       titleBoost[docID],
		})
	}

	sortResults(results)
	return results
}

// postingScore computes tf * idf * position_weight for a single posting (§4.4.5), using the
// posting's own document's total_tokens — not any other document's — per spec.md's
// resolution of the source's own-document-total-tokens ambiguity (§9, open question 1).
func (r *Ranker) postingScore(p index.Posting, termIDF float64, totalTokens int) float64 {
	tf := float64(p.Freq) / (1 + math.Log(1+float64(totalTokens)/1000))

	positionWeight := 1.0
	if k := len(p.Positions); k > 0 && totalTokens > 0 {
		sum := 0
		for _, pos := range p.Positions {
			sum += pos
		}
		mean := float64(sum) / float64(k)
		ratio := mean / float64(totalTokens)
		if ratio < 0.2 {
			positionWeight = 1 + (0.2-ratio)*2
		}
	}

	return tf * termIDF * positionWeight
}

// idf computes log10(N/df+1); 0 when the term is unknown or there are no documents.
func (r *Ranker) idf(term string, totalDocs int) float64 {
	if totalDocs == 0 {
		return 0
	}
	df := r.index.DocFrequency(term)
	if df == 0 {
		return 0
	}
	return math.Log10(float64(totalDocs)/float64(df) + 1)
}

// findExactPhraseDocs returns the set of doc IDs whose lowercased full content contains
// exactPhrase verbatim. Only evaluated for multi-token queries (§4.4.2).
func (r *Ranker) findExactPhraseDocs(qTerms []string, exactPhrase string, docs map[uint32]model.Document) map[uint32]bool {
	matches := make(map[uint32]bool)
	if len(qTerms) < 2 {
		return matches
	}
	for docID, doc := range docs {
		if strings.Contains(strings.ToLower(doc.FullContent), exactPhrase) {
			matches[docID] = true
		}
	}
	return matches
}

// findTitleMatches computes, per document, the filename title boost (§4.4.3): for every
// query term of length >= 3, the first occurrence in the lowercased filename contributes
// 1.0 (2.0 if whole-word), further multiplied by 1.5 if it starts within the first 20 bytes.
func (r *Ranker) findTitleMatches(qTerms []string, docs map[uint32]model.Document) (boost map[uint32]float64, has map[uint32]bool) {
	boost = make(map[uint32]float64)
	has = make(map[uint32]bool)

	titleTerms := make([]string, 0, len(qTerms))
	for _, t := range dedupe(qTerms) {
		if len(t) >= minTitleTermLength {
			titleTerms = append(titleTerms, t)
		}
	}
	if len(titleTerms) == 0 {
		return boost, has
	}

	for docID, doc := range docs {
		filename := strings.ToLower(doc.Filename)
		var total float64
		for _, term := range titleTerms {
			idx := strings.Index(filename, term)
			if idx < 0 {
				continue
			}
			termScore := 1.0
			if isWholeWordMatch(filename, idx, len(term)) {
				termScore = 2.0
			}
			if idx < titleLeadingBytes {
				termScore *= 1.5
			}
			total += termScore
		}
		if total > 0 {
			boost[docID] = total
			has[docID] = true
		}
	}
	return boost, has
}

func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// normalizeForLength applies the document-length bucket multipliers from §4.4.6.
func normalizeForLength(score float64, totalTokens int) float64 {
	switch {
	case totalTokens < 100:
		return score * 0.1
	case totalTokens > 1000 && totalTokens < 100_000:
		return score * 1.2
	case totalTokens > 200_000:
		return score * 0.9
	default:
		return score
	}
}

// sortResults orders results descending by (ExactPhraseMatch, TitleBoost, Score,
// TotalOccurrences), with Score ties within scoreTieTolerance falling through to
// TotalOccurrences, and a final DocID tie-break to keep the order deterministic regardless
// of map iteration order.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.ExactPhraseMatch != b.ExactPhraseMatch {
			return a.ExactPhraseMatch
		}
		if a.TitleBoost != b.TitleBoost {
			return a.TitleBoost > b.TitleBoost
		}
		if math.Abs(a.Score-b.Score) > scoreTieTolerance {
			return a.Score > b.Score
		}
		if a.TotalOccurrences != b.TotalOccurrences {
			return a.TotalOccurrences > b.TotalOccurrences
		}
		return a.DocID < b.DocID
	})
}

// isAlnumByte reports whether b is an ASCII letter or digit, used for whole-word boundary
// checks during title matching.
func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isWholeWordMatch(s string, idx, termLen int) bool {
	if idx > 0 && isAlnumByte(s[idx-1]) {
		return false
	}
	end := idx + termLen
	if end < len(s) && isAlnumByte(s[end]) {
		return false
	}
	return true
}
