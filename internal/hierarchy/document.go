package hierarchy

import (
	"maps"
	"time"

	"github.com/phototext/phototext/internal/document"
)

// now is the clock used for Modified stamps. Tests override it.
var now = time.Now

// Document is the hierarchical representation: the same metadata head as
// the flat document, over an ordered sequence of top-level parts.
type Document struct {
	Title       string
	Description string
	Created     time.Time
	Modified    time.Time
	Metadata    map[string]any
	parts       []*Part
}

// New creates an empty hierarchical document stamped with the current time.
func New(title string) *Document {
	t := now()
	return &Document{
		Title:    title,
		Created:  t,
		Modified: t,
		Metadata: map[string]any{},
	}
}

// Parts returns the top-level sections in order.
func (d *Document) Parts() []*Part { return d.parts }

// AddPart appends a top-level section and bumps the modification time.
// Top-level parts have no parent; their derived level is 1.
func (d *Document) AddPart(p *Part) {
	p.parent = nil
	d.parts = append(d.parts, p)
	d.Modified = now()
}

// ImageIDs returns every referenced image identifier in pre-order,
// duplicates included.
func (d *Document) ImageIDs() []string {
	var ids []string
	for _, p := range d.parts {
		ids = append(ids, p.ImageIDs()...)
	}
	return ids
}

// ValidateImageIDs returns the referenced identifiers missing from known,
// in first-encounter order.
func (d *Document) ValidateImageIDs(known map[string]bool) []string {
	return document.MissingImageIDs(d.ImageIDs(), known)
}

func cloneMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return maps.Clone(meta)
}
