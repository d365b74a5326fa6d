// Package document owns read items: it stamps them with the document handle,
// nests children into containers and attaches durations.
package document

import (
	"iter"
	"sync"

	"github.com/google/uuid"

	"lyread/internal/item"
	"lyread/internal/source"
)

// Document is the owner of the items read from one source file.
type Document struct {
	ID   item.DocRef
	Path string
	File *source.File
	// Items are the top-level items in source order; nested items are
	// reachable through their containers.
	Items []item.Item
}

// Walk yields every item of the document depth-first in source order,
// attached durations included.
func (d *Document) Walk() iter.Seq[item.Item] {
	return func(yield func(item.Item) bool) {
		walk(d.Items, yield)
	}
}

func walk(items []item.Item, yield func(item.Item) bool) bool {
	for _, it := range items {
		if !yield(it) {
			return false
		}
		if c, ok := it.(item.Container); ok {
			if !walk(c.Children(), yield) {
				return false
			}
		}
		if d, ok := it.(item.Durable); ok && d.Duration() != nil {
			if !yield(d.Duration()) {
				return false
			}
		}
	}
	return true
}

// Registry resolves document handles. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	docs map[item.DocRef]*Document
}

func NewRegistry() *Registry {
	return &Registry{docs: make(map[item.DocRef]*Document)}
}

// New registers an empty document for path.
func (r *Registry) New(path string, file *source.File) *Document {
	doc := &Document{ID: item.DocRef(uuid.New()), Path: path, File: file}
	r.mu.Lock()
	r.docs[doc.ID] = doc
	r.mu.Unlock()
	return doc
}

// Lookup resolves a handle; it fails for unknown or released documents.
func (r *Registry) Lookup(id item.DocRef) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	return doc, ok
}

// Of resolves the document an item belongs to.
func (r *Registry) Of(it item.Item) (*Document, bool) {
	return r.Lookup(it.Document())
}

// Release forgets a document. Items keep their handle, which no longer resolves.
func (r *Registry) Release(id item.DocRef) {
	r.mu.Lock()
	delete(r.docs, id)
	r.mu.Unlock()
}

// Len returns the number of live documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
