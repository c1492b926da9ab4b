package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelsearch/textsearch/config"
	"github.com/kestrelsearch/textsearch/index"
	"github.com/kestrelsearch/textsearch/services"
	"github.com/kestrelsearch/textsearch/store"
)

func newFixtures() (*index.InvertedIndex, *store.DocumentStore, *index.Trie) {
	return index.New(), store.New(), index.NewTrie()
}

func TestBuild_BasicIngestion(t *testing.T) {
	idx, docs, trie := newFixtures()
	files := []services.InputFile{
		{Name: "hello.txt", Filepath: "/data/hello.txt", Data: []byte("hello world")},
	}

	result, err := Build(idx, docs, trie, files, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentsIndexed)
	assert.Equal(t, 0, result.FilesSkipped)

	postings, ok := idx.Postings("hello")
	require.True(t, ok)
	require.Len(t, postings, 1)
	assert.Equal(t, uint32(0), postings[0].DocID)
	assert.Equal(t, 1, postings[0].Freq)
	assert.Equal(t, []int{0}, postings[0].Positions)

	doc, ok := docs.Get(0)
	require.True(t, ok)
	assert.Equal(t, "hello.txt", doc.Filename)
	assert.Equal(t, 2, doc.TotalTokens)
}

func TestBuild_DocIDsAreDenseAndStable(t *testing.T) {
	idx, docs, trie := newFixtures()
	files := []services.InputFile{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "b.txt", Data: []byte("beta")},
		{Name: "c.txt", Data: []byte("gamma")},
	}

	result, err := Build(idx, docs, trie, files, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, result.DocumentsIndexed)

	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		doc, ok := docs.Get(uint32(i))
		require.True(t, ok)
		assert.Equal(t, name, doc.Filename)
	}
}

func TestBuild_SkipsOversizeFiles(t *testing.T) {
	idx, docs, trie := newFixtures()
	settings := config.Default()
	settings.MaxFileSizeBytes = 10

	files := []services.InputFile{
		{Name: "small.txt", Data: []byte("ok")},
		{Name: "huge.txt", Data: []byte("this file body is far too large")},
	}

	result, err := Build(idx, docs, trie, files, settings)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentsIndexed)
	assert.Equal(t, 1, result.FilesSkipped)

	doc, ok := docs.Get(0)
	require.True(t, ok)
	assert.Equal(t, "small.txt", doc.Filename)
}

func TestBuild_EmptyInputLeavesIndexCleared(t *testing.T) {
	idx, docs, trie := newFixtures()
	result, err := Build(idx, docs, trie, nil, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, result.DocumentsIndexed)
	assert.Equal(t, 0, docs.Len())
	assert.Equal(t, 0, idx.VocabularySize())
}

func TestBuild_PositionsCappedAndFreqContinuesCounting(t *testing.T) {
	idx, docs, trie := newFixtures()
	settings := config.Default()
	settings.MaxPostingPositions = 3

	// "word" appears 5 times.
	data := []byte("word word word word word")
	files := []services.InputFile{{Name: "rep.txt", Data: data}}

	_, err := Build(idx, docs, trie, files, settings)
	require.NoError(t, err)

	postings, ok := idx.Postings("word")
	require.True(t, ok)
	require.Len(t, postings, 1)
	assert.Equal(t, 5, postings[0].Freq)
	assert.Len(t, postings[0].Positions, 3)
	assert.Equal(t, []int{0, 1, 2}, postings[0].Positions)
}

func TestBuild_TrieOnlyGetsInRangeTerms(t *testing.T) {
	idx, docs, trie := newFixtures()
	settings := config.Default()
	settings.MinTrieWordLength = 2
	settings.MaxTrieWordLength = 5

	// "category" (8 letters) is indexed but lies outside the trie's [2,5] length range.
	files := []services.InputFile{{Name: "doc.txt", Data: []byte("cat category")}}
	_, err := Build(idx, docs, trie, files, settings)
	require.NoError(t, err)

	got := trie.StartsWith("cat", 10)
	assert.ElementsMatch(t, []string{"cat"}, got)
}

func TestBuild_DeterministicAcrossRuns(t *testing.T) {
	files := []services.InputFile{
		{Name: "a.txt", Data: []byte("the quick brown fox")},
		{Name: "b.txt", Data: []byte("jumps over the lazy dog")},
	}

	idx1, docs1, trie1 := newFixtures()
	_, err := Build(idx1, docs1, trie1, files, config.Default())
	require.NoError(t, err)

	idx2, docs2, trie2 := newFixtures()
	_, err = Build(idx2, docs2, trie2, files, config.Default())
	require.NoError(t, err)

	assert.Equal(t, idx1.VocabularySize(), idx2.VocabularySize())
	for _, term := range idx1.Terms() {
		p1, _ := idx1.Postings(term)
		p2, ok := idx2.Postings(term)
		require.True(t, ok)
		assert.ElementsMatch(t, p1, p2)
	}
	assert.Equal(t, docs1.Len(), docs2.Len())
}

func TestBuild_VocabularyCapStopsIngestion(t *testing.T) {
	idx, docs, trie := newFixtures()
	settings := config.Default()
	settings.MaxVocabulary = 1

	files := []services.InputFile{
		{Name: "a.txt", Data: []byte("alpha")},
		{Name: "b.txt", Data: []byte("beta")},
	}
	result, err := Build(idx, docs, trie, files, settings)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentsIndexed)
	assert.Equal(t, 1, idx.VocabularySize())
}
