package index

import (
	"strconv"
	"sync"

	"github.com/kestrelsearch/textsearch/internal/cache"
	"github.com/kestrelsearch/textsearch/internal/metrics"
)

const (
	trieCacheCapacity = 1000
	maxTrieWordLength = 25
)

// trieNode is a single node of the 26-ary lowercase-ASCII prefix tree. The Trie owns every
// node reachable from its root; there are no shared or cyclic references.
type trieNode struct {
	children [26]*trieNode
	isWord   bool
}

// Trie is the vocabulary prefix index backing autocomplete. Insert and StartsWith are the
// only operations; StartsWith results are memoized in a FIFO cache keyed by "prefix|limit".
type Trie struct {
	mu          sync.RWMutex
	root        *trieNode
	prefixCache *cache.FIFO[string, []string]
	metrics     *metrics.Metrics
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{
		root:        &trieNode{},
		prefixCache: cache.NewFIFO[string, []string](trieCacheCapacity),
	}
}

// Insert adds word to the trie. Empty words and words longer than 25 bytes are rejected;
// non-lowercase-ASCII-letter bytes are rejected too, since the trie is defined over the
// 26-letter lowercase alphabet only.
func (t *Trie) Insert(word string) {
	if len(word) == 0 || len(word) > maxTrieWordLength {
		return
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if node.children[idx] == nil {
			node.children[idx] = &trieNode{}
		}
		node = node.children[idx]
	}
	node.isWord = true
}

// SetMetrics wires t's prefix-cache hits and misses into m, labeled "prefix". Passing nil
// (the zero value) disables recording; safe to call before any query reaches the trie.
func (t *Trie) SetMetrics(m *metrics.Metrics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = m
}

// Clear drops every node and flushes the prefix-results cache.
func (t *Trie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = &trieNode{}
	t.prefixCache.Clear()
}

// StartsWith returns up to limit indexed words sharing prefix, in breadth-first,
// alphabetical-child-order enumeration. An empty prefix, a prefix absent from the trie, or
// a non-positive limit all return the empty slice.
func (t *Trie) StartsWith(prefix string, limit int) []string {
	if prefix == "" || limit <= 0 {
		return []string{}
	}
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < 'a' || prefix[i] > 'z' {
			return []string{}
		}
	}

	key := prefix + "|" + strconv.Itoa(limit)
	if cached, ok := t.prefixCache.Get(key); ok {
		if t.metrics != nil {
			t.metrics.CacheHitsTotal.WithLabelValues("prefix").Inc()
		}
		out := make([]string, len(cached))
		copy(out, cached)
		return out
	}
	if t.metrics != nil {
		t.metrics.CacheMissesTotal.WithLabelValues("prefix").Inc()
	}

	results := t.walk(prefix, limit)

	stored := make([]string, len(results))
	copy(stored, results)
	t.prefixCache.Put(key, stored)

	return results
}

func (t *Trie) walk(prefix string, limit int) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for i := 0; i < len(prefix); i++ {
		idx := prefix[i] - 'a'
		if node.children[idx] == nil {
			return []string{}
		}
		node = node.children[idx]
	}

	type queued struct {
		node *trieNode
		word string
	}

	results := make([]string, 0, limit)
	queue := []queued{{node, prefix}}
	for len(queue) > 0 && len(results) < limit {
		cur := queue[0]
		queue = queue[1:]

		if cur.node.isWord {
			results = append(results, cur.word)
			if len(results) >= limit {
				break
			}
		}

		for c := 0; c < 26; c++ {
			if child := cur.node.children[c]; child != nil {
				queue = append(queue, queued{child, cur.word + string(rune('a'+c))})
			}
		}
	}

	return results
}
