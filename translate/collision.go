package translate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/sym"
)

// CollisionError reports a hand-written occurrence of a name the translator
// generates for a Greek letter. It matches errors.ErrNamingCollision.
type CollisionError struct {
	Name   string
	Line   int
	Column int
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("reserved ASCII identifier %q found in unicode source at line %d, column %d",
		e.Name, e.Line, e.Column)
}

// Is lets errors.Is(err, errors.ErrNamingCollision) match.
func (e *CollisionError) Is(target error) bool {
	return target == errors.ErrNamingCollision
}

func newCollisionError(name string, line, column int, prefix string) error {
	err := &CollisionError{Name: name, Line: line, Column: column}
	if glyph := glyphFor(name, prefix); glyph != "" {
		return errors.WithHintf(err, "write the Unicode symbol %s instead of %s in the .f90u source", glyph, name)
	}
	return errors.WithHint(err, "write the Unicode symbol instead of its ASCII spelling in the .f90u source")
}

// glyphFor returns the lowercase Greek letter that generates name.
func glyphFor(name, prefix string) string {
	for _, e := range sym.ByCategory(sym.CategoryGreekLower) {
		if prefix+e.Replacement == name {
			return e.Glyph()
		}
	}
	return ""
}

// findReserved looks for a reserved name anywhere in code. The surrounding
// characters do not matter: my_uc_alpha collides with the translation of
// my_uc_α, and uc_deltat with that of Δt.
//
// It returns the leftmost match, preferring the longest name at that offset.
func findReserved(code string, names []string) (name string, column int, found bool) {
	best := -1
	for _, n := range names {
		i := strings.Index(code, n)
		if i < 0 {
			continue
		}
		if best < 0 || i < best || (i == best && len(n) > len(name)) {
			best, name = i, n
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return name, utf8.RuneCountInString(code[:best]) + 1, true
}
