package app

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/dshills/mixedtabs/internal/engine"
	"github.com/dshills/mixedtabs/internal/infobar"
)

// Document is an open file with its info bar.
type Document struct {
	// Path is the absolute file path.
	Path string

	// Name is the display name.
	Name string

	// Engine holds the text, undo history and revision state.
	Engine *engine.Document

	// Bar is the mixed-indentation bar attached to the document.
	Bar *infobar.Bar
}

// DocumentManager tracks open documents by absolute path.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentManager creates an empty document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		documents: make(map[string]*Document),
	}
}

// Get returns the document open at path, or nil.
func (dm *DocumentManager) Get(path string) *Document {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil
	}

	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.documents[absPath]
}

// All returns the open documents sorted by path.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.documents))
	for _, d := range dm.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

func (dm *DocumentManager) add(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.documents[doc.Path] = doc
}

func (dm *DocumentManager) remove(doc *Document) bool {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.documents[doc.Path] != doc {
		return false
	}
	delete(dm.documents, doc.Path)
	return true
}
