package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestTrie(words ...string) *Trie {
	tr := NewTrie()
	for _, w := range words {
		tr.Insert(w)
	}
	return tr
}

func TestTrie_StartsWith_Basic(t *testing.T) {
	tr := buildTestTrie("program", "programming", "programmer", "pragma")

	got := tr.StartsWith("prog", 2)
	assert.Len(t, got, 2)
	for _, w := range got {
		assert.True(t, len(w) >= 4 && w[:4] == "prog")
	}
}

func TestTrie_StartsWith_EmptyPrefix(t *testing.T) {
	tr := buildTestTrie("cat", "car")
	assert.Empty(t, tr.StartsWith("", 10))
}

func TestTrie_StartsWith_MissingPrefix(t *testing.T) {
	tr := buildTestTrie("cat", "car")
	assert.Empty(t, tr.StartsWith("dog", 10))
}

func TestTrie_StartsWith_AlphabeticalOrder(t *testing.T) {
	tr := buildTestTrie("catalog", "cab", "cat", "car")
	got := tr.StartsWith("ca", 10)
	// BFS over alphabetically-ordered children visits "cab" and "car" and "cat" before
	// the longer "catalog".
	assert.Equal(t, []string{"cab", "car", "cat", "catalog"}, got)
}

func TestTrie_Insert_RejectsOutOfRange(t *testing.T) {
	tr := NewTrie()
	tr.Insert("")
	tr.Insert("thisWordHasAnUppercaseLetter")
	tr.Insert("has space")
	assert.Empty(t, tr.StartsWith("t", 10))
}

func TestTrie_Clear(t *testing.T) {
	tr := buildTestTrie("apple", "app")
	assert.NotEmpty(t, tr.StartsWith("app", 10))
	tr.Clear()
	assert.Empty(t, tr.StartsWith("app", 10))
}

func TestTrie_PrefixCache_ReturnsCopy(t *testing.T) {
	tr := buildTestTrie("apple", "app")
	first := tr.StartsWith("app", 10)
	first[0] = "mutated"
	second := tr.StartsWith("app", 10)
	assert.NotEqual(t, "mutated", second[0])
}
