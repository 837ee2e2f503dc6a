// Package htmlimport converts the restricted HTML produced by the editor
// back into a block sequence. Accepted elements are the ones the renderer
// emits: h1-h6, p, ul/li, figure/figcaption, img, strong/b, em/i. Anything
// else is treated as a transparent container or skipped.
package htmlimport

import (
	"fmt"
	"io"
	"strings"

	"github.com/phototext/phototext/internal/document"
	"github.com/phototext/phototext/internal/render"
	"golang.org/x/net/html"
)

var schemePrefix = render.Scheme + "://"

// Blocks parses editor HTML into an ordered block sequence. Image sources
// must be scheme references or carry a data-image-id attribute; a real URL
// fails with ErrValidation. The model never stores external URLs.
func Blocks(r io.Reader) ([]document.Block, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var blocks []document.Block
	var walkErr error

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				h, err := document.NewHeading(level, inlineSpans(n, document.StylePlain)...)
				if err != nil {
					walkErr = err
					return
				}
				blocks = append(blocks, h)
				return
			}
			switch n.Data {
			case "p":
				blocks = append(blocks, &document.Paragraph{Content: inlineSpans(n, document.StylePlain)})
				return
			case "ul", "ol":
				blocks = append(blocks, listBlock(n))
				return
			case "figure":
				img, err := figureBlock(n)
				if err != nil {
					walkErr = err
					return
				}
				if img != nil {
					blocks = append(blocks, img)
				}
				return
			case "img":
				img, err := imageBlock(n, "")
				if err != nil {
					walkErr = err
					return
				}
				blocks = append(blocks, img)
				return
			case "script", "style", "head", "nav", "footer":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if walkErr != nil {
		return nil, walkErr
	}
	return blocks, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// inlineSpans flattens the inline content of n into a merged span run.
// Style tags nest: strong inside em yields bold_italic.
func inlineSpans(n *html.Node, style document.SpanStyle) []document.Span {
	var spans []document.Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			spans = append(spans, document.Span{Text: c.Data, Style: style})
		case c.Type == html.ElementNode && (c.Data == "strong" || c.Data == "b"):
			spans = append(spans, inlineSpans(c, combine(style, document.StyleBold))...)
		case c.Type == html.ElementNode && (c.Data == "em" || c.Data == "i"):
			spans = append(spans, inlineSpans(c, combine(style, document.StyleItalic))...)
		case c.Type == html.ElementNode:
			spans = append(spans, inlineSpans(c, style)...)
		}
	}
	return document.MergeSpans(spans)
}

func combine(base, add document.SpanStyle) document.SpanStyle {
	switch {
	case base == add, add == document.StylePlain:
		return base
	case base == document.StylePlain:
		return add
	default:
		// Bold over italic or italic over bold, in either order.
		return document.StyleBoldItalic
	}
}

func listBlock(n *html.Node) *document.List {
	list := &document.List{Items: [][]document.Span{}}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			list.Items = append(list.Items, inlineSpans(c, document.StylePlain))
		}
	}
	return list
}

func figureBlock(n *html.Node) (*document.Image, error) {
	img := findElement(n, "img")
	if img == nil {
		return nil, nil
	}
	caption := ""
	if fc := findElement(n, "figcaption"); fc != nil {
		caption = strings.TrimSpace(textContent(fc))
	}
	return imageBlock(img, caption)
}

func imageBlock(n *html.Node, caption string) (*document.Image, error) {
	var src, alt, dataID string
	for _, a := range n.Attr {
		switch a.Key {
		case "src":
			src = a.Val
		case "alt":
			alt = a.Val
		case "data-image-id":
			dataID = a.Val
		}
	}

	id := dataID
	if id == "" {
		if !strings.HasPrefix(src, schemePrefix) {
			return nil, fmt.Errorf("%w: image source %q is not a %s reference", document.ErrValidation, src, render.Scheme)
		}
		id = strings.TrimPrefix(src, schemePrefix)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: image missing identifier", document.ErrValidation)
	}
	return &document.Image{ImageID: id, Caption: caption, Alt: alt}, nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return b.String()
}
