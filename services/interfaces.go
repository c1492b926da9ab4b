// Package services defines the contracts between the indexing/search core and its external
// collaborators (directory enumeration, file reading, JSON encoding — all driver-layer
// plumbing per the system's design) plus the JSON-facing result shapes those collaborators
// serialize.
package services

// InputFile is the (name, bytes) triple the core consumes when building an index. Directory
// enumeration and file reading happen upstream of the core; by the time a slice of InputFile
// reaches BuildFromFiles, the core never touches the filesystem itself.
type InputFile struct {
	Name     string // basename, e.g. "notes.txt"
	Filepath string // original locator, opaque to the core
	Data     []byte
}

// DirectoryScanner returns an ordered sequence of .txt file paths (each at most 200 MiB),
// sorted by ascending file size. Implemented by the driver layer, never by this module.
type DirectoryScanner interface {
	Scan(dir string) ([]string, error)
}

// FileReader returns the raw bytes for a path. Implemented by the driver layer.
type FileReader interface {
	Read(path string) ([]byte, error)
}

// ResultEncoder serializes a result value to JSON. The core never marshals its own output;
// no type in this module implements the interface, and cmd/textsearch encodes its output
// with encoding/json directly.
type ResultEncoder interface {
	Encode(v interface{}) ([]byte, error)
}

// SearchHit is a single ranked, snippet-annotated result row.
type SearchHit struct {
	Rank             int     `json:"rank"`
	Filename         string  `json:"filename"`
	Filepath         string  `json:"filepath"`
	Score            float64 `json:"score"`
	TotalOccurrences int     `json:"totalOccurrences"`
	InTitle          bool    `json:"inTitle"`
	ExactPhraseMatch bool    `json:"exactPhraseMatch"`
	Snippet          string  `json:"snippet"`
}

// SearchResult is the payload shape shared by search and prefix_search responses.
type SearchResult struct {
	Query          string      `json:"query,omitempty"`
	Prefix         string      `json:"prefix,omitempty"`
	Count          int         `json:"count"`
	TotalResults   int         `json:"total_results"`
	TotalPages     int         `json:"total_pages"`
	Page           int         `json:"page"`
	ResultsPerPage int         `json:"results_per_page"`
	Mode           string      `json:"mode"`
	TimeMs         int64       `json:"time_ms"`
	NextPage       *int        `json:"next_page,omitempty"`
	PrevPage       *int        `json:"prev_page,omitempty"`
	Results        []SearchHit `json:"results"`
}

// AutocompleteResult is the payload for autocomplete responses.
type AutocompleteResult struct {
	Prefix      string   `json:"prefix"`
	Count       int      `json:"count"`
	TimeMs      int64    `json:"time_ms"`
	Suggestions []string `json:"suggestions"`
}

// StatusResult is the payload for the no-mode status response.
type StatusResult struct {
	Status            string `json:"status"`
	Documents         int    `json:"documents"`
	UniqueTerms       int    `json:"unique_terms"`
	DataDirectory     string `json:"data_directory"`
	TotalWordsIndexed int    `json:"total_words_indexed"`
}

// ErrorResult is the payload for error responses.
type ErrorResult struct {
	Error string `json:"error"`
}
