package hierarchy

import "github.com/phototext/phototext/internal/document"

// FromFlat builds the nested section tree for a flat block sequence in a
// single left-to-right scan.
//
// The scan keeps a stack of open sections with the heading level each was
// created at, seeded with a phantom root at level 0. A heading of level L
// pops every entry at level >= L, so it attaches to the nearest section
// opened at a strictly smaller level; the heading level is taken verbatim
// from the block, never reinterpreted against depth. Non-heading blocks
// land in the section on top of the stack; if none is open yet, an
// UntitledHeading section is synthesized for them.
func FromFlat(src *document.Document) *Document {
	doc := &Document{
		Title:       src.Title,
		Description: src.Description,
		Created:     src.Created,
		Modified:    src.Modified,
		Metadata:    cloneMetadata(src.Metadata),
	}

	type frame struct {
		part  *Part // nil for the phantom root
		level int
	}
	stack := []frame{{part: nil, level: 0}}

	open := func(p *Part, level int) {
		if top := stack[len(stack)-1].part; top == nil {
			p.parent = nil
			doc.parts = append(doc.parts, p)
		} else {
			top.AddSubPart(p)
		}
		stack = append(stack, frame{part: p, level: level})
	}

	for _, b := range src.Blocks {
		if h, ok := b.(*document.Heading); ok {
			for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			open(NewPart(h.Content...), h.Level)
			continue
		}
		if len(stack) == 1 {
			// Content before the first heading.
			open(NewPart(document.Plain(UntitledHeading)), 1)
		}
		top := stack[len(stack)-1].part
		top.content = append(top.content, b)
	}

	return doc
}

// FlatBlocks flattens the part in pre-order: one heading block at the
// derived level, the content blocks, then each subsection. Every heading in
// the result is emitted here, so none is ever orphaned among content.
//
// Because the heading level is re-derived from depth, a tree built from a
// flat sequence with skipped levels (an h3 directly under an h1) flattens
// back with contiguous levels. That normalization is deliberate.
func (p *Part) FlatBlocks() []document.Block {
	blocks := make([]document.Block, 0, 1+len(p.content))
	blocks = append(blocks, &document.Heading{Level: p.Level(), Content: p.heading})
	blocks = append(blocks, p.content...)
	for _, sub := range p.subParts {
		blocks = append(blocks, sub.FlatBlocks()...)
	}
	return blocks
}

// ToFlat flattens the whole document back to the flat representation,
// carrying the metadata head over unchanged.
func (d *Document) ToFlat() *document.Document {
	out := &document.Document{
		Title:       d.Title,
		Description: d.Description,
		Created:     d.Created,
		Modified:    d.Modified,
		Metadata:    cloneMetadata(d.Metadata),
	}
	for _, p := range d.parts {
		out.Blocks = append(out.Blocks, p.FlatBlocks()...)
	}
	return out
}
