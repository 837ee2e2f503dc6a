package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phototext/phototext/internal/document"
	"github.com/phototext/phototext/internal/hierarchy"
	"github.com/phototext/phototext/internal/render"
)

// handleCreateDocument validates and stores a flat document. The stored
// bytes are the caller's JSON verbatim; validation is all-or-nothing.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	doc, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		modelError(w, err)
		return
	}

	rec := s.store.Put(doc.Title, doc.Modified, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":     rec.ID,
		"title":  rec.Title,
		"blocks": len(doc.Blocks),
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	var docs []map[string]any
	for _, rec := range s.store.List() {
		docs = append(docs, map[string]any{
			"id":       rec.ID,
			"title":    rec.Title,
			"modified": rec.Modified,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument returns the stored JSON verbatim.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	rec := s.store.Get(chi.URLParam(r, "docID"))
	if rec == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(rec.JSON)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.store.Delete(chi.URLParam(r, "docID")) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"deleted":true}`))
}

func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(render.HTML(doc, s.renderOptions())))
}

func (s *Server) handleRenderMarkdown(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(render.Markdown(doc)))
}

// handleOutline returns the hierarchical form of a stored flat document.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hierarchy.FromFlat(doc))
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	var entries []map[string]any
	for _, e := range hierarchy.FromFlat(doc).TOC() {
		entries = append(entries, map[string]any{
			"title": e.Title,
			"level": e.Level,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"toc": entries})
}

// handleImages lists referenced image ids; with ?known=a,b it also reports
// which references are missing from that set.
func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	resp := map[string]any{"image_ids": doc.ImageIDs()}
	if knownParam := r.URL.Query().Get("known"); knownParam != "" {
		known := map[string]bool{}
		for _, id := range strings.Split(knownParam, ",") {
			if id = strings.TrimSpace(id); id != "" {
				known[id] = true
			}
		}
		resp["missing"] = doc.ValidateImageIDs(known)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (*document.Document, bool) {
	rec := s.store.Get(chi.URLParam(r, "docID"))
	if rec == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil, false
	}
	doc, err := document.Decode(bytes.NewReader(rec.JSON))
	if err != nil {
		// Stored documents were validated on the way in.
		jsonError(w, "stored document unreadable: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return doc, true
}

// readBody reads a size-limited request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := readAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
		} else {
			jsonError(w, "failed to read request body", http.StatusBadRequest)
		}
		return nil, false
	}
	return data, true
}

func readAll(r *http.Request) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r.Body)
	return buf.Bytes(), err
}

// modelError maps the model's error taxonomy onto HTTP statuses.
func modelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrValidation),
		errors.Is(err, document.ErrUnknownBlockType),
		errors.Is(err, document.ErrMalformedJSON),
		errors.Is(err, document.ErrUnsupportedVersion):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
