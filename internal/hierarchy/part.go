// Package hierarchy holds the nested-section representation of a PhotoText
// document and its conversion to and from the flat block sequence.
package hierarchy

import (
	"fmt"

	"github.com/phototext/phototext/internal/document"
)

// MaxLevel is the deepest heading level the flat format can express.
// Parts nested deeper than this still report MaxLevel: the clamp is lossy
// but keeps flattened output within the heading range.
const MaxLevel = 6

// UntitledHeading is the sentinel heading given to the section synthesized
// for content that appears before any heading in a flat sequence.
const UntitledHeading = "(Untitled)"

// Part is one section of a hierarchical document: its own heading spans,
// the content blocks under it, and its subsections. Headings exist only as
// the part's heading field, never among its content blocks.
//
// The parent pointer is a non-owning back-reference used for level
// derivation; ownership runs top-down through subParts.
type Part struct {
	heading  []document.Span
	content  []document.Block
	subParts []*Part
	parent   *Part
}

// NewPart creates a section with the given heading spans.
func NewPart(heading ...document.Span) *Part {
	return &Part{heading: heading}
}

// Heading returns the part's heading spans.
func (p *Part) Heading() []document.Span { return p.heading }

// Content returns the part's content blocks in order.
func (p *Part) Content() []document.Block { return p.content }

// SubParts returns the child sections in order.
func (p *Part) SubParts() []*Part { return p.subParts }

// Parent returns the enclosing section, or nil for a top-level part.
func (p *Part) Parent() *Part { return p.parent }

// Level is the part's derived heading level: one more than its ancestor
// count, clamped to MaxLevel. It is never stored.
func (p *Part) Level() int {
	level := 1
	for a := p.parent; a != nil; a = a.parent {
		level++
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// HeadingText returns the plain text of the heading.
func (p *Part) HeadingText() string { return document.SpanText(p.heading) }

// AddContent appends a block to the part's content. Heading blocks are
// rejected: a section's heading lives in its heading field.
func (p *Part) AddContent(b document.Block) error {
	if _, ok := b.(*document.Heading); ok {
		return fmt.Errorf("%w: headings not allowed in content", document.ErrValidation)
	}
	p.content = append(p.content, b)
	return nil
}

// AddSubPart appends child as the last subsection, reparenting it.
func (p *Part) AddSubPart(child *Part) {
	child.parent = p
	p.subParts = append(p.subParts, child)
}

// ImageIDs returns every image identifier under the part in pre-order,
// duplicates included.
func (p *Part) ImageIDs() []string {
	var ids []string
	for _, b := range p.content {
		if img, ok := b.(*document.Image); ok {
			ids = append(ids, img.ImageID)
		}
	}
	for _, sub := range p.subParts {
		ids = append(ids, sub.ImageIDs()...)
	}
	return ids
}
