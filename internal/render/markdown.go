package render

import (
	"strings"

	"github.com/phototext/phototext/internal/document"
	"github.com/phototext/phototext/internal/hierarchy"
)

// Markdown renders a flat document, one blank line between blocks. Image
// references keep the Scheme prefix: the model has no real URLs to emit.
func Markdown(d *document.Document) string {
	parts := make([]string, 0, len(d.Blocks)*2)
	for _, b := range d.Blocks {
		parts = append(parts, BlockMarkdown(b), "")
	}
	return strings.Join(parts, "\n")
}

// MarkdownTree renders a hierarchical document by flattening it first.
func MarkdownTree(d *hierarchy.Document) string {
	return Markdown(d.ToFlat())
}

// BlockMarkdown renders a single block.
func BlockMarkdown(b document.Block) string {
	switch blk := b.(type) {
	case *document.Heading:
		return strings.Repeat("#", blk.Level) + " " + spansMarkdown(blk.Content)
	case *document.Paragraph:
		return spansMarkdown(blk.Content)
	case *document.List:
		lines := make([]string, len(blk.Items))
		for i, item := range blk.Items {
			lines[i] = "- " + spansMarkdown(item)
		}
		return strings.Join(lines, "\n")
	case *document.Image:
		return "![" + blk.AltText() + "](" + Scheme + ":" + blk.ImageID + ")"
	default:
		return ""
	}
}

func spansMarkdown(spans []document.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Markdown())
	}
	return b.String()
}
