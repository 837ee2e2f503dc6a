package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/phototext/phototext/internal/document"
	"github.com/phototext/phototext/internal/hierarchy"
)

// HTML renders a flat document as an HTML fragment: an optional style
// block, then the blocks inside a root container div.
func HTML(d *document.Document, opts Options) string {
	var b strings.Builder
	if opts.IncludeCSS {
		b.WriteString(css(opts.class()))
		b.WriteByte('\n')
	}
	b.WriteString(`<div class="` + html.EscapeString(opts.class()) + `">`)
	b.WriteByte('\n')
	for _, blk := range d.Blocks {
		b.WriteString(BlockHTML(blk, opts))
		b.WriteByte('\n')
	}
	b.WriteString("</div>")
	return b.String()
}

// HTMLTree renders a hierarchical document by flattening it first, so both
// representations share one output grammar.
func HTMLTree(d *hierarchy.Document, opts Options) string {
	return HTML(d.ToFlat(), opts)
}

// BlockHTML renders a single block.
func BlockHTML(b document.Block, opts Options) string {
	switch blk := b.(type) {
	case *document.Heading:
		return fmt.Sprintf("<h%d>%s</h%d>", blk.Level, spansHTML(blk.Content), blk.Level)
	case *document.Paragraph:
		return "<p>" + spansHTML(blk.Content) + "</p>"
	case *document.List:
		var sb strings.Builder
		sb.WriteString("<ul>\n")
		for _, item := range blk.Items {
			sb.WriteString("<li>" + spansHTML(item) + "</li>\n")
		}
		sb.WriteString("</ul>")
		return sb.String()
	case *document.Image:
		return imageHTML(blk, opts)
	default:
		return ""
	}
}

func imageHTML(img *document.Image, opts Options) string {
	tag := `<img src="` + html.EscapeString(opts.imageSrc(img.ImageID)) +
		`" alt="` + html.EscapeString(img.AltText()) + `" />`
	if img.Caption == "" {
		return tag
	}
	return "<figure>\n" + tag + "\n<figcaption>" +
		html.EscapeString(img.Caption) + "</figcaption>\n</figure>"
}

func spansHTML(spans []document.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.HTML())
	}
	return b.String()
}

func css(class string) string {
	return fmt.Sprintf(cssTemplate, class)
}

// cssTemplate carries the default styling for HTML output; %[1]s is the
// root container class.
const cssTemplate = `<style>
.%[1]s {
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    line-height: 1.6;
    color: #333;
}
.%[1]s h1 { font-size: 2.5em; margin-top: 0; }
.%[1]s h2 { font-size: 2em; margin-top: 1.5em; }
.%[1]s h3 { font-size: 1.5em; margin-top: 1.2em; }
.%[1]s p { margin: 1em 0; }
.%[1]s ul { margin: 1em 0; padding-left: 2em; }
.%[1]s img {
    max-width: 100%%;
    height: auto;
    display: block;
    margin: 2em auto;
    border-radius: 8px;
    box-shadow: 0 2px 8px rgba(0,0,0,0.1);
}
.%[1]s figcaption {
    text-align: center;
    font-size: 0.9em;
    color: #666;
}
</style>`
