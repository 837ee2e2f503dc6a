package hierarchy

import (
	"reflect"
	"testing"
	"time"

	"github.com/phototext/phototext/internal/document"
)

func heading(t *testing.T, level int, text string) *document.Heading {
	t.Helper()
	h, err := document.NewHeading(level, document.Plain(text))
	if err != nil {
		t.Fatalf("heading %q: %v", text, err)
	}
	return h
}

func flatDoc(blocks ...document.Block) *document.Document {
	return &document.Document{
		Title:    "Test",
		Created:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Modified: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Metadata: map[string]any{},
		Blocks:   blocks,
	}
}

func TestFromFlat_NestedSections(t *testing.T) {
	src := flatDoc(
		heading(t, 1, "A"),
		document.NewParagraph(document.Plain("under A")),
		heading(t, 2, "B"),
		document.NewParagraph(document.Plain("under B")),
		heading(t, 2, "C"),
		heading(t, 1, "D"),
	)

	doc := FromFlat(src)

	parts := doc.Parts()
	if len(parts) != 2 {
		t.Fatalf("expected 2 top-level parts, got %d", len(parts))
	}

	a := parts[0]
	if a.HeadingText() != "A" || len(a.Content()) != 1 {
		t.Errorf("part A: %q with %d blocks", a.HeadingText(), len(a.Content()))
	}
	if len(a.SubParts()) != 2 {
		t.Fatalf("expected 2 subsections under A, got %d", len(a.SubParts()))
	}
	if a.SubParts()[0].HeadingText() != "B" || a.SubParts()[1].HeadingText() != "C" {
		t.Errorf("unexpected subsections: %q, %q", a.SubParts()[0].HeadingText(), a.SubParts()[1].HeadingText())
	}
	if got := a.SubParts()[0].Level(); got != 2 {
		t.Errorf("B: expected level 2, got %d", got)
	}

	if parts[1].HeadingText() != "D" || parts[1].Level() != 1 {
		t.Errorf("part D: %q at level %d", parts[1].HeadingText(), parts[1].Level())
	}
}

func TestRoundTrip_ContiguousLevels(t *testing.T) {
	// Heading levels match true nesting, so flatten(hierarchize(x)) == x.
	src := flatDoc(
		heading(t, 1, "Trip"),
		document.NewParagraph(document.Plain("intro")),
		heading(t, 2, "Rome"),
		document.NewImage("img_rome"),
		heading(t, 3, "Colosseum"),
		document.NewParagraph(document.Plain("huge")),
		heading(t, 2, "Florence"),
		document.NewParagraph(document.Plain("art")),
	)

	got := FromFlat(src).ToFlat()

	if !reflect.DeepEqual(got.Blocks, src.Blocks) {
		t.Errorf("blocks changed on round-trip:\n got %#v\nwant %#v", got.Blocks, src.Blocks)
	}
	if got.Title != src.Title || !got.Created.Equal(src.Created) || !got.Modified.Equal(src.Modified) {
		t.Errorf("metadata head changed on round-trip")
	}
}

func TestRoundTrip_SkippedLevelsNormalized(t *testing.T) {
	// H3 directly under H1 still nests, and flattening regenerates the
	// heading at the derived level 2.
	src := flatDoc(
		heading(t, 1, "A"),
		heading(t, 3, "B"),
	)

	doc := FromFlat(src)
	if len(doc.Parts()) != 1 {
		t.Fatalf("expected 1 top-level part, got %d", len(doc.Parts()))
	}
	b := doc.Parts()[0].SubParts()
	if len(b) != 1 || b[0].HeadingText() != "B" {
		t.Fatalf("expected B as child of A, got %v", b)
	}

	flat := doc.ToFlat()
	if len(flat.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(flat.Blocks))
	}
	h2 := flat.Blocks[1].(*document.Heading)
	if h2.Level != 2 {
		t.Errorf("expected B renormalized to level 2, got %d", h2.Level)
	}
}

func TestFromFlat_NonIncreasingHeadings(t *testing.T) {
	// An H1 after an H2 pops past it and opens a new top-level section.
	src := flatDoc(
		heading(t, 2, "X"),
		heading(t, 1, "Y"),
	)

	doc := FromFlat(src)
	if len(doc.Parts()) != 2 {
		t.Fatalf("expected 2 top-level parts, got %d", len(doc.Parts()))
	}

	flat := doc.ToFlat()
	for i, b := range flat.Blocks {
		if h := b.(*document.Heading); h.Level != 1 {
			t.Errorf("block %d: expected level 1, got %d", i, h.Level)
		}
	}
}

func TestFromFlat_PreHeadingContent(t *testing.T) {
	src := flatDoc(
		document.NewParagraph(document.Plain("intro")),
		heading(t, 1, "Section"),
	)

	doc := FromFlat(src)
	parts := doc.Parts()
	if len(parts) != 2 {
		t.Fatalf("expected 2 top-level parts, got %d", len(parts))
	}
	if parts[0].HeadingText() != UntitledHeading {
		t.Errorf("expected sentinel heading, got %q", parts[0].HeadingText())
	}
	if len(parts[0].Content()) != 1 {
		t.Errorf("expected intro paragraph in sentinel part, got %d blocks", len(parts[0].Content()))
	}
	if parts[1].HeadingText() != "Section" {
		t.Errorf("expected Section part, got %q", parts[1].HeadingText())
	}
}

func TestEndToEnd_TripDocument(t *testing.T) {
	doc := New("Trip 2024")
	trip := NewPart(document.Plain("Trip"))
	if err := trip.AddContent(document.NewParagraph(document.Plain("We went south."))); err != nil {
		t.Fatalf("add paragraph: %v", err)
	}
	rome := NewPart(document.Plain("Rome"))
	if err := rome.AddContent(document.NewImage("img_rome")); err != nil {
		t.Fatalf("add image: %v", err)
	}
	trip.AddSubPart(rome)
	doc.AddPart(trip)

	flat := doc.ToFlat()
	if len(flat.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(flat.Blocks))
	}

	h1 := flat.Blocks[0].(*document.Heading)
	if h1.Level != 1 || document.SpanText(h1.Content) != "Trip" {
		t.Errorf("block 0: expected H1 Trip, got level %d %q", h1.Level, document.SpanText(h1.Content))
	}
	if _, ok := flat.Blocks[1].(*document.Paragraph); !ok {
		t.Errorf("block 1: expected paragraph, got %T", flat.Blocks[1])
	}
	h2 := flat.Blocks[2].(*document.Heading)
	if h2.Level != 2 || document.SpanText(h2.Content) != "Rome" {
		t.Errorf("block 2: expected H2 Rome, got level %d %q", h2.Level, document.SpanText(h2.Content))
	}
	img := flat.Blocks[3].(*document.Image)
	if img.ImageID != "img_rome" {
		t.Errorf("block 3: expected img_rome, got %q", img.ImageID)
	}

	ids := doc.ImageIDs()
	if len(ids) != 1 || ids[0] != "img_rome" {
		t.Errorf("expected [img_rome], got %v", ids)
	}
}

func TestTOC_PreOrder(t *testing.T) {
	src := flatDoc(
		heading(t, 1, "A"),
		heading(t, 2, "B"),
		heading(t, 3, "C"),
		heading(t, 1, "D"),
	)

	toc := FromFlat(src).TOC()
	wantTitles := []string{"A", "B", "C", "D"}
	wantLevels := []int{1, 2, 3, 1}
	if len(toc) != len(wantTitles) {
		t.Fatalf("expected %d entries, got %d", len(wantTitles), len(toc))
	}
	for i, e := range toc {
		if e.Title != wantTitles[i] || e.Level != wantLevels[i] {
			t.Errorf("entry %d: expected %q level %d, got %q level %d",
				i, wantTitles[i], wantLevels[i], e.Title, e.Level)
		}
		if e.Part == nil {
			t.Errorf("entry %d: missing part reference", i)
		}
	}
}
