package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/sym"
)

// Unmapped is a non-ASCII code point left in translated code.
type Unmapped struct {
	Line   int
	Column int
	Rune   rune
}

func (u Unmapped) String() string {
	return fmt.Sprintf("%d:%d %q (%U)", u.Line, u.Column, u.Rune, u.Rune)
}

// Result is the outcome of translating one document.
type Result struct {
	Text     string
	Lines    int
	Replaced int // code points substituted
	Unmapped []Unmapped
}

// Translate converts a whole document. Lines are handled independently and
// reassembled in order with their original terminators.
//
// Before a line is translated, its untranslated code is checked for
// reserved names; a hit aborts the whole document with a *CollisionError and
// no partial text is returned.
func Translate(text string, opts Options) (Result, error) {
	prefix := opts.prefix()
	marker := opts.marker()
	reserved := sym.ReservedNames(prefix)

	lines := splitLines(text)

	var out strings.Builder
	out.Grow(len(text) + len(text)/4)

	res := Result{Lines: len(lines)}
	for n, ln := range lines {
		lineNo := n + 1

		code, comment := ln.body, ""
		if opts.PreserveComments {
			code, comment = SplitComment(ln.body, marker)
		}
		if opts.Normalize {
			code = norm.NFC.String(code)
		}

		if name, col, ok := findReserved(code, reserved); ok {
			return Result{}, newCollisionError(name, lineNo, col, prefix)
		}

		var f fragment
		f.translate(code, prefix)
		for _, u := range f.unmapped {
			u.Line = lineNo
			res.Unmapped = append(res.Unmapped, u)
		}
		res.Replaced += f.replaced

		out.WriteString(f.String())
		out.WriteString(comment)
		out.WriteString(ln.eol)
	}

	if opts.Strict && len(res.Unmapped) > 0 {
		return Result{}, unmappedError(res.Unmapped)
	}

	res.Text = out.String()
	return res, nil
}

// TranslateText is Translate without the statistics.
func TranslateText(text string, opts Options) (string, error) {
	res, err := Translate(text, opts)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func unmappedError(unmapped []Unmapped) error {
	first := unmapped[0]
	err := errors.Mark(
		errors.Newf("%d non-ASCII character(s) remain after translation, first at line %d, column %d: %q",
			len(unmapped), first.Line, first.Column, first.Rune),
		errors.ErrUnmappedSymbol)
	return errors.WithHint(err, "run 'uf90 table' to list supported symbols, or move the text into a comment")
}
