// Package store holds the document metadata table the ranker and snippet extractor read
// from. It is built once by internal/indexing and is read-only for the rest of the process.
package store

import (
	"sync"

	"github.com/kestrelsearch/textsearch/model"
)

// DocumentStore maps a dense doc_id to its Document record.
type DocumentStore struct {
	Mu   sync.RWMutex
	Docs map[uint32]model.Document
}

// New returns an empty DocumentStore.
func New() *DocumentStore {
	return &DocumentStore{Docs: make(map[uint32]model.Document)}
}

// Clear drops every document, returning the store to its just-constructed state.
func (ds *DocumentStore) Clear() {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()
	ds.Docs = make(map[uint32]model.Document)
}

// Put records doc under its own DocID.
func (ds *DocumentStore) Put(doc model.Document) {
	ds.Docs[doc.DocID] = doc
}

// Get returns the document for docID and whether it exists.
func (ds *DocumentStore) Get(docID uint32) (model.Document, bool) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	d, ok := ds.Docs[docID]
	return d, ok
}

// Len returns the number of documents in the store.
func (ds *DocumentStore) Len() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Docs)
}
