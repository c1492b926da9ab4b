// Package index holds the inverted index and prefix trie the ranker queries against.
// Both are built once by internal/indexing and are read-only for the rest of the process.
package index

import "sync"

// MaxDocFreq is the storage-compactness saturation point for DocFreq. It is a storage hint,
// not a semantic one: ranking math always uses DocFrequency as a real number, so saturation
// only affects corpora with more than MaxDocFreq documents sharing a single term.
const MaxDocFreq = 32767

// MaxVocabulary is the default distinct-term ceiling. Ingestion enforces the configured
// config.EngineSettings.MaxVocabulary, whose default has the same value; this constant is
// not read by the build.
const MaxVocabulary = 200_000

// InvertedIndex maps a term to the unordered collection of postings naming the documents
// that contain it, plus the parallel per-term document-frequency count.
type InvertedIndex struct {
	Mu      sync.RWMutex
	Index   map[string]PostingList
	DocFreq map[string]uint16
}

// New returns an empty, ready-to-use InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		Index:   make(map[string]PostingList),
		DocFreq: make(map[string]uint16),
	}
}

// Clear drops all postings and document-frequency counts, returning the index to its
// just-constructed state. Callers must also clear the trie and any caches.
func (ii *InvertedIndex) Clear() {
	ii.Mu.Lock()
	defer ii.Mu.Unlock()
	ii.Index = make(map[string]PostingList)
	ii.DocFreq = make(map[string]uint16)
}

// AddPosting appends a posting to its term's list. The caller is responsible for ensuring
// at most one posting per (term, doc) pair is ever added — this is a build-time invariant
// enforced by internal/indexing, not re-validated here.
func (ii *InvertedIndex) AddPosting(term string, p Posting) {
	ii.Index[term] = append(ii.Index[term], p)
}

// RecomputeDocFreq sets DocFreq[t] to len(Index[t]) for every term, saturating at
// MaxDocFreq. Called once after ingestion completes.
func (ii *InvertedIndex) RecomputeDocFreq() {
	for term, list := range ii.Index {
		n := len(list)
		if n > MaxDocFreq {
			n = MaxDocFreq
		}
		ii.DocFreq[term] = uint16(n)
	}
}

// Postings returns the posting list for a term and whether the term is indexed at all.
func (ii *InvertedIndex) Postings(term string) (PostingList, bool) {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	pl, ok := ii.Index[term]
	return pl, ok
}

// DocFrequency returns the number of documents containing term, 0 if the term is unknown.
func (ii *InvertedIndex) DocFrequency(term string) int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return int(ii.DocFreq[term])
}

// VocabularySize returns the number of distinct indexed terms.
func (ii *InvertedIndex) VocabularySize() int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return len(ii.Index)
}

// Terms returns every indexed term. Used once, at build time, to populate the trie.
func (ii *InvertedIndex) Terms() []string {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	terms := make([]string, 0, len(ii.Index))
	for t := range ii.Index {
		terms = append(terms, t)
	}
	return terms
}
