package document

import "errors"

// Error taxonomy for the model. All failures are synchronous and
// all-or-nothing: a document that fails to decode or validate is never
// partially constructed. Callers match with errors.Is.
var (
	// ErrValidation covers structural rule violations: heading levels
	// outside 1-6, headings placed in section content, external image URLs.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownBlockType is returned when a block carries an unrecognized
	// type discriminator. It aborts the whole document decode.
	ErrUnknownBlockType = errors.New("unknown block type")

	// ErrMalformedJSON is returned when input is not parseable as the
	// expected document shape or is missing required fields.
	ErrMalformedJSON = errors.New("malformed document")

	// ErrUnsupportedVersion is returned when a document declares a wire
	// format version this package does not read.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)
