package ranker

// Result is a single scored document, before snippet extraction and pagination slicing.
type Result struct {
	DocID            uint32
	Score            float64
	TotalOccurrences int
	InTitle          bool
	ExactPhraseMatch bool
	TitleBoost       float64
}
