// Package render turns PhotoText documents into HTML or Markdown. It is a
// pure consumer of the model: image identifiers are mapped to URLs only
// here, through an injected resolver, never inside the model itself.
package render

// Scheme is the placeholder protocol for content-addressed image
// references. Markdown output always uses it; HTML falls back to it when no
// resolver is injected.
const Scheme = "phototext"

// DefaultCSSClass is the root container class when none is configured.
const DefaultCSSClass = "phototext-document"

// Resolver maps a content-addressed image identifier to a displayable URL.
type Resolver func(imageID string) string

// Options configures rendering. The zero value renders without CSS, with
// the default container class, and with placeholder image sources.
type Options struct {
	// IncludeCSS prepends a style block to HTML output.
	IncludeCSS bool
	// CSSClass overrides the root container class.
	CSSClass string
	// Resolver supplies real image URLs; nil means Scheme placeholders.
	Resolver Resolver
}

func (o Options) class() string {
	if o.CSSClass == "" {
		return DefaultCSSClass
	}
	return o.CSSClass
}

func (o Options) imageSrc(imageID string) string {
	if o.Resolver != nil {
		return o.Resolver(imageID)
	}
	return Scheme + "://" + imageID
}
