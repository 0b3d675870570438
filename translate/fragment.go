package translate

import (
	"strings"
	"unicode/utf8"

	"github.com/teranos/uf90/sym"
)

// fragment accumulates the translation of one code segment.
// last is the final rune written so far; the prefix decision for a Greek
// letter looks at it rather than at the source, since earlier substitutions
// change what precedes the insertion point.
type fragment struct {
	b        strings.Builder
	last     rune
	hasLast  bool
	replaced int
	unmapped []Unmapped
}

func (f *fragment) write(s string) {
	if s == "" {
		return
	}
	f.b.WriteString(s)
	f.last, _ = utf8.DecodeLastRuneInString(s)
	f.hasLast = true
}

func (f *fragment) continuesIdentifier() bool {
	return f.hasLast && sym.IsIdentChar(f.last)
}

// translate scans s one logical unit at a time: a single symbol, a maximal
// digit-script run, or one unmatched code point copied byte for byte.
func (f *fragment) translate(s, prefix string) {
	col := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		col++

		e, ok := sym.Lookup(r)
		if !ok {
			// Copy the original bytes so malformed UTF-8 survives untouched.
			f.write(s[i : i+size])
			if r >= utf8.RuneSelf {
				f.unmapped = append(f.unmapped, Unmapped{Column: col, Rune: r})
			}
			i += size
			continue
		}

		switch {
		case e.Category.IsGreek():
			if f.continuesIdentifier() {
				f.write(e.Replacement)
			} else {
				f.write(prefix + strings.ToLower(e.Replacement))
			}
			f.replaced++
			i += size

		case e.Category.IsDigitScript():
			var digits strings.Builder
			j := i
			for j < len(s) {
				next, n := utf8.DecodeRuneInString(s[j:])
				ne, ok := sym.Lookup(next)
				if !ok || ne.Category != e.Category {
					break
				}
				if j > i {
					col++
				}
				digits.WriteString(ne.Replacement)
				f.replaced++
				j += n
			}
			f.write(runSuffix(e.Category) + digits.String())
			i = j

		default:
			f.write(e.Replacement)
			f.replaced++
			i += size
		}
	}
}

func runSuffix(c sym.Category) string {
	if c == sym.CategorySuperscript {
		return "_p"
	}
	return "_"
}

func (f *fragment) String() string {
	return f.b.String()
}

// TranslateFragment translates a single code segment. The segment is taken
// as-is: comment splitting and collision checks belong to Translate.
func TranslateFragment(s string, opts Options) string {
	var f fragment
	f.translate(s, opts.prefix())
	return f.String()
}
