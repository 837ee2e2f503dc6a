// Package document holds the flat PhotoText model: inline spans, the block
// union, and the ordered-block document with its JSON wire format.
package document

import (
	"strings"
	"time"
)

// Version is the wire format version this package reads and writes.
const Version = "1.0"

// now is the clock used for Created/Modified stamps. Tests override it.
var now = time.Now

// Document is the flat representation: metadata plus an ordered block
// sequence. It owns its blocks exclusively.
type Document struct {
	Title       string
	Description string
	Created     time.Time
	Modified    time.Time
	Metadata    map[string]any
	Blocks      []Block
}

// New creates an empty document stamped with the current time.
func New(title string) *Document {
	t := now()
	return &Document{
		Title:    title,
		Created:  t,
		Modified: t,
		Metadata: map[string]any{},
	}
}

// AddBlock appends a block and bumps the modification time.
func (d *Document) AddBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
	d.Modified = now()
}

// ImageIDs returns every referenced image identifier in block order,
// duplicates included.
func (d *Document) ImageIDs() []string {
	var ids []string
	for _, b := range d.Blocks {
		if img, ok := b.(*Image); ok {
			ids = append(ids, img.ImageID)
		}
	}
	return ids
}

// ValidateImageIDs returns the referenced identifiers missing from known,
// in first-encounter order.
func (d *Document) ValidateImageIDs(known map[string]bool) []string {
	return MissingImageIDs(d.ImageIDs(), known)
}

// MissingImageIDs filters ids down to those absent from known, keeping
// first-encounter order. Shared by both document representations.
func MissingImageIDs(ids []string, known map[string]bool) []string {
	var missing []string
	seen := map[string]bool{}
	for _, id := range ids {
		if known[id] || seen[id] {
			continue
		}
		seen[id] = true
		missing = append(missing, id)
	}
	return missing
}

// CountImages returns the number of image blocks.
func (d *Document) CountImages() int {
	n := 0
	for _, b := range d.Blocks {
		if b.Type() == TypeImage {
			n++
		}
	}
	return n
}

// CountWords returns a rough word count over the text-bearing blocks.
func (d *Document) CountWords() int {
	total := 0
	for _, b := range d.Blocks {
		switch b.Type() {
		case TypeHeading, TypeParagraph, TypeList:
			total += len(strings.Fields(b.PlainText()))
		}
	}
	return total
}
