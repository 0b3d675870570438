// Package translate rewrites Unicode Fortran source into pure ASCII.
//
// The engine is a single left-to-right scan per line. Greek letters become
// identifier names (prefixed when they start an identifier), runs of
// subscript or superscript digits collapse into one suffix, and operator
// symbols become their ASCII spelling. Trailing comments are left alone
// unless comment preservation is disabled.
//
// Everything here is pure and safe for concurrent use: the only shared state
// is the read-only symbol table in package sym.
package translate

// Defaults for Options fields left at their zero value.
const (
	DefaultIdentifierPrefix = "uc_"
	DefaultCommentMarker    = '!'
)

// Options configures one translation call.
type Options struct {
	// PreserveComments leaves everything from the first comment marker to the
	// end of the line untouched.
	PreserveComments bool

	// IdentifierPrefix is prepended to a Greek name that starts an
	// identifier. Empty means DefaultIdentifierPrefix.
	IdentifierPrefix string

	// CommentMarker introduces a trailing comment. Zero means
	// DefaultCommentMarker.
	CommentMarker rune

	// Normalize applies Unicode NFC to code segments before translating,
	// folding compatibility spellings such as U+2126 OHM SIGN onto the
	// Greek letters the table knows.
	Normalize bool

	// Strict fails the translation when non-ASCII characters remain in
	// translated code.
	Strict bool
}

// DefaultOptions returns the documented defaults: comments preserved,
// "uc_" prefix, '!' comment marker.
func DefaultOptions() Options {
	return Options{
		PreserveComments: true,
		IdentifierPrefix: DefaultIdentifierPrefix,
		CommentMarker:    DefaultCommentMarker,
	}
}

func (o Options) prefix() string {
	if o.IdentifierPrefix == "" {
		return DefaultIdentifierPrefix
	}
	return o.IdentifierPrefix
}

func (o Options) marker() rune {
	if o.CommentMarker == 0 {
		return DefaultCommentMarker
	}
	return o.CommentMarker
}
