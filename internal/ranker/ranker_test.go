package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelsearch/textsearch/config"
	"github.com/kestrelsearch/textsearch/index"
	"github.com/kestrelsearch/textsearch/internal/indexing"
	"github.com/kestrelsearch/textsearch/internal/tokenizer"
	"github.com/kestrelsearch/textsearch/services"
	"github.com/kestrelsearch/textsearch/store"
)

func buildFixture(t *testing.T, files []services.InputFile) *Ranker {
	t.Helper()
	idx, docs, trie := index.New(), store.New(), index.NewTrie()
	_, err := indexing.Build(idx, docs, trie, files, config.Default())
	require.NoError(t, err)
	return New(idx, docs)
}

func TestRank_NoMatchesReturnsEmpty(t *testing.T) {
	r := buildFixture(t, []services.InputFile{
		{Name: "doc.txt", Data: []byte("apple banana cherry")},
	})
	results := r.Rank(tokenizer.TokenizeString("zucchini"), "zucchini")
	assert.Empty(t, results)
}

func TestRank_EmptyIndexReturnsEmpty(t *testing.T) {
	r := buildFixture(t, nil)
	results := r.Rank(tokenizer.TokenizeString("anything"), "anything")
	assert.Empty(t, results)
}

func TestRank_FavorsDocumentWithHigherTermFrequency(t *testing.T) {
	r := buildFixture(t, []services.InputFile{
		{Name: "sparse.txt", Data: []byte("rocket launch sequence begins today across the facility grounds")},
		{Name: "dense.txt", Data: []byte("rocket rocket rocket launch preparation checklist review meeting notes archive storage")},
	})
	results := r.Rank(tokenizer.TokenizeString("rocket"), "rocket")
	require.NotEmpty(t, results)
	assert.Equal(t, uint32(1), results[0].DocID)
}

func TestRank_TitleMatchBoostsRanking(t *testing.T) {
	r := buildFixture(t, []services.InputFile{
		{Name: "notes.txt", Data: []byte("budget planning for the quarter review meeting agenda items listed below")},
		{Name: "budget.txt", Data: []byte("quarterly budget figures attached for review before the meeting begins tomorrow")},
	})
	results := r.Rank(tokenizer.TokenizeString("budget"), "budget")
	require.Len(t, results, 2)
	assert.Equal(t, uint32(1), results[0].DocID)
	assert.True(t, results[0].InTitle)
}

func TestRank_ExactPhraseBoostsRanking(t *testing.T) {
	r := buildFixture(t, []services.InputFile{
		{Name: "a.txt", Data: []byte("the quick brown fox jumps over the lazy dog in the evening")},
		{Name: "b.txt", Data: []byte("a quick fox and a brown dog met near the evening jumps course")},
	})
	results := r.Rank(tokenizer.TokenizeString("quick brown fox"), "quick brown fox")
	require.Len(t, results, 2)
	assert.Equal(t, uint32(0), results[0].DocID)
	assert.True(t, results[0].ExactPhraseMatch)
}

func TestRank_DeterministicOrderingAcrossRuns(t *testing.T) {
	files := []services.InputFile{
		{Name: "one.txt", Data: []byte("signal processing pipeline architecture overview document draft")},
		{Name: "two.txt", Data: []byte("signal noise ratio analysis for the processing pipeline stage")},
		{Name: "three.txt", Data: []byte("unrelated gardening notes about processing compost pipeline flow")},
	}

	r1 := buildFixture(t, files)
	r2 := buildFixture(t, files)

	results1 := r1.Rank(tokenizer.TokenizeString("signal processing pipeline"), "signal processing pipeline")
	results2 := r2.Rank(tokenizer.TokenizeString("signal processing pipeline"), "signal processing pipeline")

	require.Equal(t, len(results1), len(results2))
	for i := range results1 {
		assert.Equal(t, results1[i].DocID, results2[i].DocID)
	}
}

func TestRank_UnknownTermsAreSkippedNotErrored(t *testing.T) {
	r := buildFixture(t, []services.InputFile{
		{Name: "doc.txt", Data: []byte("orchard apple harvest season begins in late autumn weather")},
	})
	results := r.Rank(tokenizer.TokenizeString("apple spaceship"), "apple spaceship")
	require.Len(t, results, 1)
	assert.Equal(t, uint32(0), results[0].DocID)
}
