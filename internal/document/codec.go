package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// Wire shapes. Field names are a compatibility contract shared with the
// editor and the storage backend; they must not change.

type headingData struct {
	Type    BlockType `json:"type"`
	Level   int       `json:"level"`
	Content []Span    `json:"content"`
}

type paragraphData struct {
	Type    BlockType `json:"type"`
	Content []Span    `json:"content"`
}

type listData struct {
	Type  BlockType `json:"type"`
	Items [][]Span  `json:"items"`
}

type imageData struct {
	Type    BlockType `json:"type"`
	ImageID string    `json:"imageId"`
	Caption string    `json:"caption,omitempty"`
	Alt     string    `json:"alt,omitempty"`
}

type documentData struct {
	Version     string            `json:"version"`
	Title       *string           `json:"title"`
	Description string            `json:"description,omitempty"`
	Created     *time.Time        `json:"created"`
	Modified    *time.Time        `json:"modified"`
	Metadata    map[string]any    `json:"metadata"`
	Blocks      []json.RawMessage `json:"blocks"`
}

// MarshalBlock serializes one block with its type discriminator.
func MarshalBlock(b Block) (json.RawMessage, error) {
	switch blk := b.(type) {
	case *Heading:
		return json.Marshal(headingData{Type: TypeHeading, Level: blk.Level, Content: spansOrEmpty(blk.Content)})
	case *Paragraph:
		return json.Marshal(paragraphData{Type: TypeParagraph, Content: spansOrEmpty(blk.Content)})
	case *List:
		items := blk.Items
		if items == nil {
			items = [][]Span{}
		}
		return json.Marshal(listData{Type: TypeList, Items: items})
	case *Image:
		return json.Marshal(imageData{Type: TypeImage, ImageID: blk.ImageID, Caption: blk.Caption, Alt: blk.Alt})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownBlockType, b)
	}
}

// UnmarshalBlock deserializes one block, dispatching on its discriminator.
func UnmarshalBlock(data json.RawMessage) (Block, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: block: %v", ErrMalformedJSON, err)
	}

	switch probe.Type {
	case TypeHeading:
		var hd headingData
		if err := json.Unmarshal(data, &hd); err != nil {
			return nil, fmt.Errorf("%w: heading block: %v", ErrMalformedJSON, err)
		}
		if err := ValidateSpans(hd.Content); err != nil {
			return nil, err
		}
		return NewHeading(hd.Level, hd.Content...)
	case TypeParagraph:
		var pd paragraphData
		if err := json.Unmarshal(data, &pd); err != nil {
			return nil, fmt.Errorf("%w: paragraph block: %v", ErrMalformedJSON, err)
		}
		if err := ValidateSpans(pd.Content); err != nil {
			return nil, err
		}
		return &Paragraph{Content: pd.Content}, nil
	case TypeList:
		var ld listData
		if err := json.Unmarshal(data, &ld); err != nil {
			return nil, fmt.Errorf("%w: list block: %v", ErrMalformedJSON, err)
		}
		for _, item := range ld.Items {
			if err := ValidateSpans(item); err != nil {
				return nil, err
			}
		}
		return &List{Items: ld.Items}, nil
	case TypeImage:
		var id imageData
		if err := json.Unmarshal(data, &id); err != nil {
			return nil, fmt.Errorf("%w: image block: %v", ErrMalformedJSON, err)
		}
		if id.ImageID == "" {
			return nil, fmt.Errorf("%w: image block missing imageId", ErrMalformedJSON)
		}
		return &Image{ImageID: id.ImageID, Caption: id.Caption, Alt: id.Alt}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, probe.Type)
	}
}

func spansOrEmpty(spans []Span) []Span {
	if spans == nil {
		return []Span{}
	}
	return spans
}

// MarshalJSON writes the versioned wire format.
func (d *Document) MarshalJSON() ([]byte, error) {
	blocks := make([]json.RawMessage, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		raw, err := MarshalBlock(b)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, raw)
	}
	meta := d.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	title := d.Title
	created, modified := d.Created, d.Modified
	return json.Marshal(documentData{
		Version:     Version,
		Title:       &title,
		Description: d.Description,
		Created:     &created,
		Modified:    &modified,
		Metadata:    meta,
		Blocks:      blocks,
	})
}

// UnmarshalJSON reads the versioned wire format. Decoding is all-or-nothing:
// any malformed or unknown block aborts the whole document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var dd documentData
	if err := json.Unmarshal(data, &dd); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	// A missing version reads as the current one.
	if dd.Version != "" && dd.Version != Version {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, dd.Version)
	}
	if dd.Title == nil {
		return fmt.Errorf("%w: missing title", ErrMalformedJSON)
	}
	if dd.Created == nil || dd.Modified == nil {
		return fmt.Errorf("%w: missing timestamps", ErrMalformedJSON)
	}

	blocks := make([]Block, 0, len(dd.Blocks))
	for _, raw := range dd.Blocks {
		b, err := UnmarshalBlock(raw)
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
	}

	meta := dd.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	*d = Document{
		Title:       *dd.Title,
		Description: dd.Description,
		Created:     *dd.Created,
		Modified:    *dd.Modified,
		Metadata:    meta,
		Blocks:      blocks,
	}
	return nil
}

// Encode writes the document as indented JSON.
func Encode(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Decode reads a document, distinguishing model errors from plain JSON
// breakage.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, wireError(err)
	}
	return &d, nil
}

// wireError keeps model sentinels intact and folds everything else (syntax
// errors, wrong field types) into ErrMalformedJSON.
func wireError(err error) error {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrUnknownBlockType),
		errors.Is(err, ErrMalformedJSON),
		errors.Is(err, ErrUnsupportedVersion):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
}
