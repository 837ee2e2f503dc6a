package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/phototext/phototext/internal/document"
	"github.com/phototext/phototext/internal/hierarchy"
	"github.com/phototext/phototext/internal/htmlimport"
)

// handleHierarchize converts flat document JSON into the hierarchical form.
func (s *Server) handleHierarchize(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	flat, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		modelError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hierarchy.FromFlat(flat))
}

// handleFlatten converts hierarchical document JSON into the flat form.
// Heading levels in the output are the tree's derived levels.
func (s *Server) handleFlatten(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	tree, err := hierarchy.Decode(bytes.NewReader(data))
	if err != nil {
		modelError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tree.ToFlat())
}

// handleImportHTML converts editor HTML into a flat document. The document
// title comes from the title query parameter.
func (s *Server) handleImportHTML(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	blocks, err := htmlimport.Blocks(bytes.NewReader(data))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "Imported document"
	}
	doc := document.New(title)
	for _, b := range blocks {
		doc.AddBlock(b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}
