// Package engine composes the tokenizer, inverted index, trie, ranker, and FIFO caches into
// the three query modes the driver layers (CLI and HTTP) expose: search, autocomplete, and
// prefix_search.
package engine

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelsearch/textsearch/config"
	"github.com/kestrelsearch/textsearch/index"
	"github.com/kestrelsearch/textsearch/internal/cache"
	"github.com/kestrelsearch/textsearch/internal/indexing"
	"github.com/kestrelsearch/textsearch/internal/metrics"
	"github.com/kestrelsearch/textsearch/internal/ranker"
	"github.com/kestrelsearch/textsearch/internal/snippet"
	"github.com/kestrelsearch/textsearch/internal/tokenizer"
	"github.com/kestrelsearch/textsearch/services"
	"github.com/kestrelsearch/textsearch/store"
)

// maxSuggestionsForPrefixExpansion is the number of autocomplete completions folded into a
// prefix_search's synthetic query (§4.7).
const maxSuggestionsForPrefixExpansion = 5

// pageResult is what the result cache stores: one page's worth of ranked results plus the
// total post-filter count the page was sliced from, so a cache hit never has to re-rank.
type pageResult struct {
	page  []ranker.Result
	total int
}

// Engine owns a single built index and the caches that sit in front of it. It is safe for
// concurrent queries once BuildFromFiles has returned; BuildFromFiles itself is not
// re-entrant and must not race with queries against the same Engine.
type Engine struct {
	settings config.EngineSettings

	index *index.InvertedIndex
	docs  *store.DocumentStore
	trie  *index.Trie
	rank  *ranker.Ranker

	resultCache *cache.FIFO[string, pageResult]

	metrics *metrics.Metrics
	dataDir string
}

// New returns an Engine ready for BuildFromFiles. settings is applied with ApplyDefaults if
// the caller passed a zero value.
func New(settings config.EngineSettings) *Engine {
	settings.ApplyDefaults()

	idx := index.New()
	docs := store.New()
	trie := index.NewTrie()

	return &Engine{
		settings:    settings,
		index:       idx,
		docs:        docs,
		trie:        trie,
		rank:        ranker.New(idx, docs),
		resultCache: cache.NewFIFO[string, pageResult](settings.ResultCacheSize),
	}
}

// BuildFromFiles clears any existing index/documents/trie/caches and ingests files in order.
// dataDir is recorded only for the Status JSON shape; the core never touches the filesystem.
func (e *Engine) BuildFromFiles(dataDir string, files []services.InputFile) (indexing.Result, error) {
	e.index.Clear()
	e.docs.Clear()
	e.trie.Clear()
	e.resultCache.Clear()
	e.dataDir = dataDir

	start := time.Now()
	result, err := indexing.Build(e.index, e.docs, e.trie, files, e.settings)
	if err != nil {
		return indexing.Result{}, err
	}

	log.Printf("engine: indexed %d document(s), %d vocabulary term(s), in %s",
		result.DocumentsIndexed, e.index.VocabularySize(), time.Since(start))

	return result, nil
}

// SetMetrics wires e's result-cache hits/misses (labeled "result") and the trie's prefix-cache
// hits/misses (labeled "prefix") into m. Passing nil disables recording. Call once before
// queries reach the engine; not safe to race with concurrent Search/Autocomplete/PrefixSearch.
func (e *Engine) SetMetrics(m *metrics.Metrics) {
	e.metrics = m
	e.trie.SetMetrics(m)
}

// GetIndexStats returns the counts backing both the CLI's and the HTTP front-end's Status
// JSON shape, so neither duplicates the other's bookkeeping.
func (e *Engine) GetIndexStats() services.StatusResult {
	total := 0
	e.docs.Mu.RLock()
	for _, doc := range e.docs.Docs {
		total += doc.TotalTokens
	}
	documents := len(e.docs.Docs)
	e.docs.Mu.RUnlock()

	return services.StatusResult{
		Status:            "ok",
		Documents:         documents,
		UniqueTerms:       e.index.VocabularySize(),
		DataDirectory:     e.dataDir,
		TotalWordsIndexed: total,
	}
}

// Search tokenizes query, ranks the full corpus against it, and returns page (1-indexed) of
// size results, consulting and populating the result cache.
func (e *Engine) Search(query string, page, size int) services.SearchResult {
	out := e.search(query, page, size, "search")
	out.Query = query
	return out
}

// Autocomplete returns up to limit vocabulary completions of prefix.
func (e *Engine) Autocomplete(prefix string, limit int) services.AutocompleteResult {
	start := time.Now()
	suggestions := e.trie.StartsWith(strings.ToLower(prefix), limit)

	return services.AutocompleteResult{
		Prefix:      prefix,
		Count:       len(suggestions),
		TimeMs:      time.Since(start).Milliseconds(),
		Suggestions: suggestions,
	}
}

// PrefixSearch expands prefix into up to maxSuggestionsForPrefixExpansion completions via the
// trie, joins them into a synthetic query, and delegates to the standard search (§4.7).
func (e *Engine) PrefixSearch(prefix string, expandLimit, page, size int) services.SearchResult {
	completions := e.trie.StartsWith(strings.ToLower(prefix), expandLimit)
	if len(completions) > maxSuggestionsForPrefixExpansion {
		completions = completions[:maxSuggestionsForPrefixExpansion]
	}
	synthetic := strings.Join(completions, " ")

	out := e.search(synthetic, page, size, "prefix_search")
	out.Prefix = prefix
	return out
}

func (e *Engine) search(query string, page, size int, mode string) services.SearchResult {
	start := time.Now()
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = e.settings.DefaultPageSize
	}

	qTerms := tokenizer.TokenizeString(query)
	cacheKey := cacheKeyFor(query, page, size)

	pr, ok := e.resultCache.Get(cacheKey)
	if ok {
		if e.metrics != nil {
			e.metrics.CacheHitsTotal.WithLabelValues("result").Inc()
		}
	} else {
		if e.metrics != nil {
			e.metrics.CacheMissesTotal.WithLabelValues("result").Inc()
		}
		var full []ranker.Result
		if len(qTerms) > 0 {
			full = e.rank.Rank(qTerms, strings.ToLower(query))
		}
		pr = pageResult{page: paginate(full, page, size), total: len(full)}
		e.resultCache.Put(cacheKey, pr)
	}

	totalPages := totalPagesFor(pr.total, size)

	hits := make([]services.SearchHit, 0, len(pr.page))
	for i, r := range pr.page {
		doc, ok := e.docs.Get(r.DocID)
		if !ok {
			continue
		}
		hits = append(hits, services.SearchHit{
			Rank:             (page-1)*size + i + 1,
			Filename:         doc.Filename,
			Filepath:         doc.Filepath,
			Score:            r.Score,
			TotalOccurrences: r.TotalOccurrences,
			InTitle:          r.InTitle,
			ExactPhraseMatch: r.ExactPhraseMatch,
			Snippet:          snippet.Extract(doc.FullContent, qTerms),
		})
	}

	out := services.SearchResult{
		Count:          len(hits),
		TotalResults:   pr.total,
		TotalPages:     totalPages,
		Page:           page,
		ResultsPerPage: size,
		Mode:           mode,
		TimeMs:         time.Since(start).Milliseconds(),
		Results:        hits,
	}
	if page < totalPages {
		next := page + 1
		out.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		out.PrevPage = &prev
	}
	return out
}

// paginate slices full to [(page-1)*size, page*size), clamped to full's length.
func paginate(full []ranker.Result, page, size int) []ranker.Result {
	start := (page - 1) * size
	if start >= len(full) {
		return nil
	}
	end := start + size
	if end > len(full) {
		end = len(full)
	}
	return full[start:end]
}

func totalPagesFor(total, size int) int {
	if total == 0 {
		return 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

func cacheKeyFor(query string, page, size int) string {
	var b strings.Builder
	b.WriteString(query)
	b.WriteString("|PAGE|")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("|")
	b.WriteString(strconv.Itoa(size))
	return b.String()
}
