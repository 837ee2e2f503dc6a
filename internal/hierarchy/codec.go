package hierarchy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phototext/phototext/internal/document"
)

// Wire shapes for the hierarchical format. Like the flat format, the field
// names are a compatibility contract.

type partData struct {
	Heading  []document.Span   `json:"heading"`
	Content  []json.RawMessage `json:"content"`
	SubParts []partData        `json:"subParts"`
}

type documentData struct {
	Version     string         `json:"version"`
	Title       *string        `json:"title"`
	Description string         `json:"description,omitempty"`
	Created     *time.Time     `json:"created"`
	Modified    *time.Time     `json:"modified"`
	Metadata    map[string]any `json:"metadata"`
	Parts       []partData     `json:"parts"`
}

func marshalPart(p *Part) (partData, error) {
	heading := p.heading
	if heading == nil {
		heading = []document.Span{}
	}
	content := make([]json.RawMessage, 0, len(p.content))
	for _, b := range p.content {
		raw, err := document.MarshalBlock(b)
		if err != nil {
			return partData{}, err
		}
		content = append(content, raw)
	}
	subParts := make([]partData, 0, len(p.subParts))
	for _, sub := range p.subParts {
		sd, err := marshalPart(sub)
		if err != nil {
			return partData{}, err
		}
		subParts = append(subParts, sd)
	}
	return partData{Heading: heading, Content: content, SubParts: subParts}, nil
}

func unmarshalPart(pd partData) (*Part, error) {
	if err := document.ValidateSpans(pd.Heading); err != nil {
		return nil, err
	}
	p := NewPart(pd.Heading...)
	for _, raw := range pd.Content {
		b, err := document.UnmarshalBlock(raw)
		if err != nil {
			return nil, err
		}
		// AddContent keeps headings out of section content on the wire too.
		if err := p.AddContent(b); err != nil {
			return nil, err
		}
	}
	for _, sd := range pd.SubParts {
		sub, err := unmarshalPart(sd)
		if err != nil {
			return nil, err
		}
		p.AddSubPart(sub)
	}
	return p, nil
}

// MarshalJSON writes the versioned hierarchical wire format.
func (d *Document) MarshalJSON() ([]byte, error) {
	parts := make([]partData, 0, len(d.parts))
	for _, p := range d.parts {
		pd, err := marshalPart(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, pd)
	}
	meta := d.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	title := d.Title
	created, modified := d.Created, d.Modified
	return json.Marshal(documentData{
		Version:     document.Version,
		Title:       &title,
		Description: d.Description,
		Created:     &created,
		Modified:    &modified,
		Metadata:    meta,
		Parts:       parts,
	})
}

// UnmarshalJSON reads the versioned hierarchical wire format, restoring
// parent back-references. Decoding is all-or-nothing.
func (d *Document) UnmarshalJSON(data []byte) error {
	var dd documentData
	if err := json.Unmarshal(data, &dd); err != nil {
		return fmt.Errorf("%w: %v", document.ErrMalformedJSON, err)
	}
	if dd.Version != "" && dd.Version != document.Version {
		return fmt.Errorf("%w: %q", document.ErrUnsupportedVersion, dd.Version)
	}
	if dd.Title == nil {
		return fmt.Errorf("%w: missing title", document.ErrMalformedJSON)
	}
	if dd.Created == nil || dd.Modified == nil {
		return fmt.Errorf("%w: missing timestamps", document.ErrMalformedJSON)
	}

	parts := make([]*Part, 0, len(dd.Parts))
	for _, pd := range dd.Parts {
		p, err := unmarshalPart(pd)
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}

	meta := dd.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	*d = Document{
		Title:       *dd.Title,
		Description: dd.Description,
		Created:     *dd.Created,
		Modified:    *dd.Modified,
		Metadata:    meta,
		parts:       parts,
	}
	return nil
}

// Encode writes the document as indented JSON.
func Encode(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Decode reads a hierarchical document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		switch {
		case errors.Is(err, document.ErrValidation),
			errors.Is(err, document.ErrUnknownBlockType),
			errors.Is(err, document.ErrMalformedJSON),
			errors.Is(err, document.ErrUnsupportedVersion):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", document.ErrMalformedJSON, err)
		}
	}
	return &d, nil
}
