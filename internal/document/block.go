package document

import (
	"fmt"
	"strings"
)

// BlockType discriminates the block union on the wire.
type BlockType string

const (
	TypeHeading   BlockType = "heading"
	TypeParagraph BlockType = "paragraph"
	TypeList      BlockType = "list"
	TypeImage     BlockType = "image"
)

// Block is one structural unit of document content: a heading, paragraph,
// unordered list, or image reference.
type Block interface {
	Type() BlockType
	PlainText() string
}

// Heading is a section heading, level 1-6.
type Heading struct {
	Level   int
	Content []Span
}

// NewHeading constructs a heading, rejecting levels outside 1-6.
func NewHeading(level int, content ...Span) (*Heading, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("%w: heading level must be 1-6, got %d", ErrValidation, level)
	}
	return &Heading{Level: level, Content: content}, nil
}

func (h *Heading) Type() BlockType   { return TypeHeading }
func (h *Heading) PlainText() string { return SpanText(h.Content) }

// Paragraph is a run of inline spans.
type Paragraph struct {
	Content []Span
}

// NewParagraph constructs a paragraph from inline spans.
func NewParagraph(content ...Span) *Paragraph {
	return &Paragraph{Content: content}
}

func (p *Paragraph) Type() BlockType   { return TypeParagraph }
func (p *Paragraph) PlainText() string { return SpanText(p.Content) }

// List is an unordered list; each item is its own span run.
type List struct {
	Items [][]Span
}

// NewList constructs a list from item span runs.
func NewList(items ...[]Span) *List {
	return &List{Items: items}
}

func (l *List) Type() BlockType { return TypeList }

func (l *List) PlainText() string {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = "- " + SpanText(item)
	}
	return strings.Join(lines, "\n")
}

// Image references a picture by content-addressed identifier. ImageID is
// never a URL; mapping it to one is the renderer's job, via an injected
// resolver.
type Image struct {
	ImageID string
	Caption string
	Alt     string
}

// NewImage constructs an image reference.
func NewImage(imageID string) *Image {
	return &Image{ImageID: imageID}
}

func (i *Image) Type() BlockType   { return TypeImage }
func (i *Image) PlainText() string { return "" }

// AltText returns the alternative text for rendering: the explicit alt if
// set, else the caption, else empty.
func (i *Image) AltText() string {
	if i.Alt != "" {
		return i.Alt
	}
	return i.Caption
}
