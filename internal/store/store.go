// Package store is a thread-safe in-memory registry of stored documents.
// Documents are kept as their wire JSON, verbatim: the store performs no
// PhotoText-specific processing beyond the metadata it indexes for listing.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// Record is one stored document.
type Record struct {
	ID       string
	Title    string
	Modified time.Time
	JSON     []byte
}

// Store holds records keyed by content-addressed id.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Record
}

// New creates an empty store.
func New() *Store {
	return &Store{docs: make(map[string]*Record)}
}

// ContentID derives a document id from its serialized bytes. Storing
// identical content yields the same id.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

// Put stores a document and returns its record.
func (s *Store) Put(title string, modified time.Time, raw []byte) *Record {
	rec := &Record{
		ID:       ContentID(raw),
		Title:    title,
		Modified: modified,
		JSON:     raw,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[rec.ID] = rec
	return rec
}

// Get returns the record for id, or nil.
func (s *Store) Get(id string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

// List returns all records, most recently modified first.
func (s *Store) List() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, 0, len(s.docs))
	for _, rec := range s.docs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Modified.Equal(out[j].Modified) {
			return out[i].Modified.After(out[j].Modified)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete removes a record, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}
