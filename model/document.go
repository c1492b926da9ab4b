// Package model defines the data types shared across the indexing and search core.
package model

// Document is an indexed file. DocID is assigned densely from 0 in build order and is
// stable for the lifetime of the process; it is never reused or reassigned.
type Document struct {
	DocID       uint32
	Filename    string // basename, e.g. "notes.txt"
	Filepath    string // original locator, opaque to the core
	TotalTokens int    // number of terms the tokenizer emitted for this document
	FileSize    int64  // size in bytes of the original input
	FullContent string // original text, kept verbatim for snippets and exact-phrase matching
}
