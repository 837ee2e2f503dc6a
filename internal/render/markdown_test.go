package render

import (
	"testing"

	"github.com/phototext/phototext/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestMarkdown_Blocks(t *testing.T) {
	out := Markdown(testDoc(t))

	want := "# Trip\n" +
		"\n" +
		"We went **south**.\n" +
		"\n" +
		"- Rome\n" +
		"- Florence\n" +
		"\n" +
		"![Colosseum](phototext:img_rome)\n"
	if out != want {
		t.Errorf("markdown output:\n got %q\nwant %q", out, want)
	}
}

func TestMarkdown_HeadingLevels(t *testing.T) {
	h1, _ := document.NewHeading(1, document.Plain("A"))
	h4, _ := document.NewHeading(4, document.Plain("B"))
	doc := &document.Document{Title: "t", Blocks: []document.Block{h1, h4}}

	out := Markdown(doc)
	if out != "# A\n\n#### B\n" {
		t.Errorf("got %q", out)
	}
}

// TestMarkdown_ParsesBack feeds the renderer's output through goldmark and
// checks the structure survives a real Markdown parser.
func TestMarkdown_ParsesBack(t *testing.T) {
	src := []byte(Markdown(testDoc(t)))
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var levels []int
	var listItems int
	var imageDest string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			levels = append(levels, node.Level)
		case *ast.ListItem:
			listItems++
		case *ast.Image:
			imageDest = string(node.Destination)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if len(levels) != 1 || levels[0] != 1 {
		t.Errorf("expected one h1, got levels %v", levels)
	}
	if listItems != 2 {
		t.Errorf("expected 2 list items, got %d", listItems)
	}
	if imageDest != "phototext:img_rome" {
		t.Errorf("expected scheme-prefixed image destination, got %q", imageDest)
	}
}
