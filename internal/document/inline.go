package document

import (
	"fmt"
	"html"
	"strings"
)

// SpanStyle is the inline formatting applied to a run of text.
type SpanStyle string

const (
	StylePlain      SpanStyle = "plain"
	StyleBold       SpanStyle = "bold"
	StyleItalic     SpanStyle = "italic"
	StyleBoldItalic SpanStyle = "bold_italic"
)

// Span is a run of text with one formatting style. It is a pure value type:
// two spans with the same text and style are interchangeable.
type Span struct {
	Text  string    `json:"text"`
	Style SpanStyle `json:"style"`
}

// Plain returns an unstyled span.
func Plain(text string) Span { return Span{Text: text, Style: StylePlain} }

// Bold returns a bold span.
func Bold(text string) Span { return Span{Text: text, Style: StyleBold} }

// Italic returns an italic span.
func Italic(text string) Span { return Span{Text: text, Style: StyleItalic} }

// BoldItalic returns a bold italic span.
func BoldItalic(text string) Span { return Span{Text: text, Style: StyleBoldItalic} }

// HTML renders the span with its style tags. Text is escaped.
func (s Span) HTML() string {
	text := html.EscapeString(s.Text)
	switch s.Style {
	case StyleBold:
		return "<strong>" + text + "</strong>"
	case StyleItalic:
		return "<em>" + text + "</em>"
	case StyleBoldItalic:
		return "<strong><em>" + text + "</em></strong>"
	default:
		return text
	}
}

// Markdown renders the span with its style delimiters.
func (s Span) Markdown() string {
	switch s.Style {
	case StyleBold:
		return "**" + s.Text + "**"
	case StyleItalic:
		return "*" + s.Text + "*"
	case StyleBoldItalic:
		return "***" + s.Text + "***"
	default:
		return s.Text
	}
}

// SpanText joins the plain text of a span run.
func SpanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// MergeSpans collapses adjacent spans of identical style and drops empty
// ones. Inline parsers produce fragmented runs; the merged form is the
// canonical one.
func MergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// ValidateSpans checks that every span carries a known style.
func ValidateSpans(spans []Span) error {
	for _, s := range spans {
		switch s.Style {
		case StylePlain, StyleBold, StyleItalic, StyleBoldItalic:
		default:
			return fmt.Errorf("%w: unknown span style %q", ErrValidation, s.Style)
		}
	}
	return nil
}
