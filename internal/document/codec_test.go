package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleDocument() *Document {
	h1, _ := NewHeading(1, Plain("Summer Vacation"))
	h2, _ := NewHeading(2, Plain("Rome"))
	return &Document{
		Title:       "Summer Vacation 2024",
		Description: "Our trip to Italy",
		Created:     time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
		Modified:    time.Date(2024, 7, 2, 18, 30, 0, 0, time.UTC),
		Metadata:    map[string]any{"camera": "X100V"},
		Blocks: []Block{
			h1,
			NewParagraph(Plain("This is "), Bold("bold"), Plain(" text.")),
			h2,
			NewList([]Span{Plain("Colosseum")}, []Span{Italic("Forum")}),
			&Image{ImageID: "abc123", Caption: "Sunset in Rome", Alt: "sunset"},
		},
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	src := sampleDocument()
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Title != src.Title || got.Description != src.Description {
		t.Errorf("metadata head mismatch: %q %q", got.Title, got.Description)
	}
	if !got.Created.Equal(src.Created) || !got.Modified.Equal(src.Modified) {
		t.Errorf("timestamp mismatch: %v %v", got.Created, got.Modified)
	}
	if !reflect.DeepEqual(got.Metadata, src.Metadata) {
		t.Errorf("metadata mismatch: %v", got.Metadata)
	}
	if !reflect.DeepEqual(got.Blocks, src.Blocks) {
		t.Errorf("block mismatch:\n got %#v\nwant %#v", got.Blocks, src.Blocks)
	}
}

func TestDocument_WireShape(t *testing.T) {
	data, err := json.Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}

	for _, key := range []string{"version", "title", "created", "modified", "metadata", "blocks"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("missing wire field %q", key)
		}
	}
	if wire["version"] != "1.0" {
		t.Errorf("expected version 1.0, got %v", wire["version"])
	}

	blocks := wire["blocks"].([]any)
	first := blocks[0].(map[string]any)
	if first["type"] != "heading" {
		t.Errorf("expected heading discriminator, got %v", first["type"])
	}
	if first["level"] != float64(1) {
		t.Errorf("expected level 1, got %v", first["level"])
	}
	span := first["content"].([]any)[0].(map[string]any)
	if span["text"] != "Summer Vacation" || span["style"] != "plain" {
		t.Errorf("unexpected span wire shape: %v", span)
	}

	img := blocks[4].(map[string]any)
	if img["type"] != "image" || img["imageId"] != "abc123" {
		t.Errorf("unexpected image wire shape: %v", img)
	}
}

func TestDecode_UnknownBlockType(t *testing.T) {
	input := `{
		"version": "1.0", "title": "t",
		"created": "2024-07-01T09:00:00Z", "modified": "2024-07-01T09:00:00Z",
		"metadata": {},
		"blocks": [{"type": "table", "rows": []}]
	}`
	_, err := Decode(strings.NewReader(input))
	if !errors.Is(err, ErrUnknownBlockType) {
		t.Fatalf("expected ErrUnknownBlockType, got %v", err)
	}
}

func TestDecode_MissingTitle(t *testing.T) {
	input := `{
		"version": "1.0",
		"created": "2024-07-01T09:00:00Z", "modified": "2024-07-01T09:00:00Z",
		"metadata": {}, "blocks": []
	}`
	_, err := Decode(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	input := `{
		"version": "2.0", "title": "t",
		"created": "2024-07-01T09:00:00Z", "modified": "2024-07-01T09:00:00Z",
		"metadata": {}, "blocks": []
	}`
	_, err := Decode(strings.NewReader(input))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecode_InvalidHeadingLevel(t *testing.T) {
	input := `{
		"version": "1.0", "title": "t",
		"created": "2024-07-01T09:00:00Z", "modified": "2024-07-01T09:00:00Z",
		"metadata": {},
		"blocks": [{"type": "heading", "level": 9, "content": []}]
	}`
	_, err := Decode(strings.NewReader(input))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDecode_NotJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("{nope"))
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestEncodeDecode_Stream(t *testing.T) {
	src := sampleDocument()
	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != src.Title || len(got.Blocks) != len(src.Blocks) {
		t.Errorf("round-trip mismatch: %q, %d blocks", got.Title, len(got.Blocks))
	}
}
