// Package indexing builds the inverted index, document store, and prefix trie from a
// corpus of files in one pass. Tokenization of individual files runs concurrently; the
// postings merge that follows stays single-owner so the invariants in index.InvertedIndex
// (at most one posting per term per document, contiguous doc_id assignment) hold without
// locking during the build itself.
package indexing

import (
	"fmt"
	"log"
	"sort"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelsearch/textsearch/config"
	"github.com/kestrelsearch/textsearch/index"
	"github.com/kestrelsearch/textsearch/internal/tokenizer"
	"github.com/kestrelsearch/textsearch/model"
	"github.com/kestrelsearch/textsearch/services"
	"github.com/kestrelsearch/textsearch/store"
)

// maxConcurrentTokenizers bounds the tokenization prepass fan-out.
const maxConcurrentTokenizers = 8

// Result reports what happened during a build, beyond the mutated index/store/trie.
type Result struct {
	DocumentsIndexed int
	FilesSkipped     int
}

// Build tokenizes and ingests files into idx, docs, and trie, which must already be empty
// (callers rebuilding an index call Clear on all three first). Oversize files are skipped
// with a logged diagnostic; ingestion stops entirely once the vocabulary reaches
// settings.MaxVocabulary. No error not attributable to invalid settings ever reaches the
// caller — per-file and per-token failures are absorbed here, never surfaced as a build
// failure (§4.3, §7).
func Build(idx *index.InvertedIndex, docs *store.DocumentStore, trie *index.Trie, files []services.InputFile, settings config.EngineSettings) (Result, error) {
	if problems := settings.Validate(); len(problems) > 0 {
		return Result{}, fmt.Errorf("invalid engine settings: %v", problems)
	}

	accepted, skipped := filterOversizeFiles(files, settings.MaxFileSizeBytes)
	tokenized := tokenizeConcurrently(accepted)

	vocabulary := make(map[string]struct{}, settings.MaxVocabulary)
	var nextID uint32
	var diagnostics *multierror.Error

	for i, f := range accepted {
		if len(vocabulary) >= settings.MaxVocabulary {
			diagnostics = multierror.Append(diagnostics,
				fmt.Errorf("ingestion stopped before %s: vocabulary cap %d reached", f.Name, settings.MaxVocabulary))
			break
		}

		tokens := tokenized[i]
		docID := nextID
		nextID++

		perDoc, order := buildPerDocumentPostings(docID, tokens, settings)
		for _, term := range order {
			vocabulary[term] = struct{}{}
			idx.AddPosting(term, perDoc[term])
		}

		docs.Put(model.Document{
			DocID:       docID,
			Filename:    f.Name,
			Filepath:    f.Filepath,
			TotalTokens: len(tokens),
			FileSize:    int64(len(f.Data)),
			FullContent: string(f.Data),
		})
	}

	idx.RecomputeDocFreq()
	populateTrie(idx, trie, settings.MinTrieWordLength, settings.MaxTrieWordLength)

	if diagnostics != nil {
		log.Printf("indexing: %v", diagnostics)
	}
	if len(skipped) > 0 {
		log.Printf("indexing: skipped %d oversize file(s): %v", len(skipped), skipped)
	}

	return Result{DocumentsIndexed: int(nextID), FilesSkipped: len(skipped)}, nil
}

// filterOversizeFiles partitions files into those at or under maxBytes and the names of
// those skipped, preserving the accepted files' relative order.
func filterOversizeFiles(files []services.InputFile, maxBytes int64) (accepted []services.InputFile, skippedNames []string) {
	accepted = make([]services.InputFile, 0, len(files))
	for _, f := range files {
		if int64(len(f.Data)) > maxBytes {
			skippedNames = append(skippedNames, f.Name)
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, skippedNames
}

// tokenizeConcurrently tokenizes every accepted file's bytes, bounded to
// maxConcurrentTokenizers goroutines in flight. Tokenize never errors, so the returned
// slice is always fully populated in input order.
func tokenizeConcurrently(files []services.InputFile) [][]string {
	tokenized := make([][]string, len(files))

	var g errgroup.Group
	g.SetLimit(maxConcurrentTokenizers)
	for i := range files {
		i := i
		g.Go(func() error {
			tokenized[i] = tokenizer.Tokenize(files[i].Data)
			return nil
		})
	}
	_ = g.Wait()

	return tokenized
}

// buildPerDocumentPostings folds a single document's token stream into one Posting per
// distinct term, honoring the freq and positions caps, and returns the postings alongside
// the terms in first-occurrence order (for deterministic insertion into the global index).
func buildPerDocumentPostings(docID uint32, tokens []string, settings config.EngineSettings) (map[string]index.Posting, []string) {
	perDoc := make(map[string]index.Posting, len(tokens)/2+1)
	order := make([]string, 0, len(tokens)/2+1)

	for pos, term := range tokens {
		p, exists := perDoc[term]
		if !exists {
			p = index.Posting{DocID: docID, Positions: make([]int, 0, 4)}
			order = append(order, term)
		}
		if p.Freq < settings.MaxPostingFreq {
			p.Freq++
		}
		if len(p.Positions) < settings.MaxPostingPositions {
			p.Positions = append(p.Positions, pos)
		}
		perDoc[term] = p
	}

	return perDoc, order
}

// populateTrie inserts every indexed term whose length falls in [minLen, maxLen], shortest
// first — this only affects trie page cache locality for short prefixes, not correctness.
func populateTrie(idx *index.InvertedIndex, trie *index.Trie, minLen, maxLen int) {
	terms := idx.Terms()
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) < len(terms[j]) })
	for _, t := range terms {
		if len(t) >= minLen && len(t) <= maxLen {
			trie.Insert(t)
		}
	}
}
