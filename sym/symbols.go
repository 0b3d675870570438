// Package sym defines the canonical Unicode symbol table for uf90.
//
// Every supported code point is listed exactly once in the registry below,
// together with its ASCII replacement and category. The lookup tables are
// built from the registry at init time and never mutated afterwards, so the
// package is safe for concurrent use without locking.
package sym

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Category groups symbols by how the translator treats them.
type Category int

const (
	CategoryGreekLower Category = iota + 1
	CategoryGreekUpper
	CategorySubscript
	CategorySuperscript
	CategoryMathOperator
	CategoryRelational
	CategoryCalculus
	CategoryArrow
)

var categoryNames = map[Category]string{
	CategoryGreekLower:   "greek-lower",
	CategoryGreekUpper:   "greek-upper",
	CategorySubscript:    "subscript",
	CategorySuperscript:  "superscript",
	CategoryMathOperator: "math-operator",
	CategoryRelational:   "relational",
	CategoryCalculus:     "calculus",
	CategoryArrow:        "arrow",
}

var categoryLabels = map[Category]string{
	CategoryGreekLower:   "Greek letters (lowercase)",
	CategoryGreekUpper:   "Greek letters (uppercase)",
	CategorySubscript:    "Numeric subscripts",
	CategorySuperscript:  "Numeric superscripts",
	CategoryMathOperator: "Mathematical operators",
	CategoryRelational:   "Relational symbols",
	CategoryCalculus:     "Calculus symbols",
	CategoryArrow:        "Arrows",
}

// String returns the machine-readable category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Label returns the heading used in the reference table.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return c.String()
}

// IsGreek reports whether symbols of this category become identifier names.
func (c Category) IsGreek() bool {
	return c == CategoryGreekLower || c == CategoryGreekUpper
}

// IsDigitScript reports whether symbols of this category are coalesced into
// digit runs.
func (c Category) IsDigitScript() bool {
	return c == CategorySubscript || c == CategorySuperscript
}

// Entry binds a code point to its ASCII replacement.
type Entry struct {
	CodePoint   rune
	Replacement string
	Category    Category
	Description string
}

// Glyph returns the entry's code point as a string.
func (e Entry) Glyph() string {
	return string(e.CodePoint)
}

// registry is the canonical symbol list. Order is the reference table order.
var registry = []Entry{
	{'α', "alpha", CategoryGreekLower, "alpha"},
	{'β', "beta", CategoryGreekLower, "beta"},
	{'γ', "gamma", CategoryGreekLower, "gamma"},
	{'δ', "delta", CategoryGreekLower, "delta"},
	{'ε', "epsilon", CategoryGreekLower, "epsilon"},
	{'ζ', "zeta", CategoryGreekLower, "zeta"},
	{'η', "eta", CategoryGreekLower, "eta"},
	{'θ', "theta", CategoryGreekLower, "theta"},
	{'ι', "iota", CategoryGreekLower, "iota"},
	{'κ', "kappa", CategoryGreekLower, "kappa"},
	{'λ', "lambda", CategoryGreekLower, "lambda"},
	{'μ', "mu", CategoryGreekLower, "mu"},
	{'ν', "nu", CategoryGreekLower, "nu"},
	{'ξ', "xi", CategoryGreekLower, "xi"},
	{'ο', "omicron", CategoryGreekLower, "omicron"},
	{'π', "pi", CategoryGreekLower, "pi"},
	{'ρ', "rho", CategoryGreekLower, "rho"},
	{'σ', "sigma", CategoryGreekLower, "sigma"},
	{'τ', "tau", CategoryGreekLower, "tau"},
	{'υ', "upsilon", CategoryGreekLower, "upsilon"},
	{'φ', "phi", CategoryGreekLower, "phi"},
	{'χ', "chi", CategoryGreekLower, "chi"},
	{'ψ', "psi", CategoryGreekLower, "psi"},
	{'ω', "omega", CategoryGreekLower, "omega"},

	{'Α', "Alpha", CategoryGreekUpper, "Alpha uppercase"},
	{'Β', "Beta", CategoryGreekUpper, "Beta uppercase"},
	{'Γ', "Gamma", CategoryGreekUpper, "Gamma uppercase"},
	{'Δ', "Delta", CategoryGreekUpper, "Delta uppercase"},
	{'Ε', "Epsilon", CategoryGreekUpper, "Epsilon uppercase"},
	{'Ζ', "Zeta", CategoryGreekUpper, "Zeta uppercase"},
	{'Η', "Eta", CategoryGreekUpper, "Eta uppercase"},
	{'Θ', "Theta", CategoryGreekUpper, "Theta uppercase"},
	{'Ι', "Iota", CategoryGreekUpper, "Iota uppercase"},
	{'Κ', "Kappa", CategoryGreekUpper, "Kappa uppercase"},
	{'Λ', "Lambda", CategoryGreekUpper, "Lambda uppercase"},
	{'Μ', "Mu", CategoryGreekUpper, "Mu uppercase"},
	{'Ν', "Nu", CategoryGreekUpper, "Nu uppercase"},
	{'Ξ', "Xi", CategoryGreekUpper, "Xi uppercase"},
	{'Ο', "Omicron", CategoryGreekUpper, "Omicron uppercase"},
	{'Π', "Pi", CategoryGreekUpper, "Pi uppercase"},
	{'Ρ', "Rho", CategoryGreekUpper, "Rho uppercase"},
	{'Σ', "Sigma", CategoryGreekUpper, "Sigma uppercase"},
	{'Τ', "Tau", CategoryGreekUpper, "Tau uppercase"},
	{'Υ', "Upsilon", CategoryGreekUpper, "Upsilon uppercase"},
	{'Φ', "Phi", CategoryGreekUpper, "Phi uppercase"},
	{'Χ', "Chi", CategoryGreekUpper, "Chi uppercase"},
	{'Ψ', "Psi", CategoryGreekUpper, "Psi uppercase"},
	{'Ω', "Omega", CategoryGreekUpper, "Omega uppercase"},
	{'∆', "Delta", CategoryGreekUpper, "Delta increment (U+2206)"},

	{'₀', "0", CategorySubscript, "subscript 0"},
	{'₁', "1", CategorySubscript, "subscript 1"},
	{'₂', "2", CategorySubscript, "subscript 2"},
	{'₃', "3", CategorySubscript, "subscript 3"},
	{'₄', "4", CategorySubscript, "subscript 4"},
	{'₅', "5", CategorySubscript, "subscript 5"},
	{'₆', "6", CategorySubscript, "subscript 6"},
	{'₇', "7", CategorySubscript, "subscript 7"},
	{'₈', "8", CategorySubscript, "subscript 8"},
	{'₉', "9", CategorySubscript, "subscript 9"},

	{'⁰', "0", CategorySuperscript, "superscript 0"},
	{'¹', "1", CategorySuperscript, "superscript 1"},
	{'²', "2", CategorySuperscript, "superscript 2"},
	{'³', "3", CategorySuperscript, "superscript 3"},
	{'⁴', "4", CategorySuperscript, "superscript 4"},
	{'⁵', "5", CategorySuperscript, "superscript 5"},
	{'⁶', "6", CategorySuperscript, "superscript 6"},
	{'⁷', "7", CategorySuperscript, "superscript 7"},
	{'⁸', "8", CategorySuperscript, "superscript 8"},
	{'⁹', "9", CategorySuperscript, "superscript 9"},

	{'×', "*", CategoryMathOperator, "times"},
	{'÷', "/", CategoryMathOperator, "divide"},
	{'±', "+/-", CategoryMathOperator, "plus-minus"},
	{'∓', "-/+", CategoryMathOperator, "minus-plus"},
	{'⋅', "*", CategoryMathOperator, "dot product"},
	{'°', "_deg", CategoryMathOperator, "degree"},

	{'≤', "<=", CategoryRelational, "less or equal"},
	{'≥', ">=", CategoryRelational, "greater or equal"},
	{'≠', "/=", CategoryRelational, "not equal"},
	{'≈', "~", CategoryRelational, "approximately"},
	{'∞', "inf", CategoryRelational, "infinity"},

	{'∂', "d", CategoryCalculus, "partial derivative"},
	{'∇', "grad", CategoryCalculus, "nabla/gradient"},
	{'√', "sqrt", CategoryCalculus, "square root"},

	{'→', "->", CategoryArrow, "right arrow"},
	{'←', "<-", CategoryArrow, "left arrow"},
	{'⇒', "=>", CategoryArrow, "implies"},
	{'⇐', "<=", CategoryArrow, "implied by"},
}

// categoryOrder is the order categories appear in the reference table.
var categoryOrder = []Category{
	CategoryGreekLower,
	CategoryGreekUpper,
	CategorySubscript,
	CategorySuperscript,
	CategoryMathOperator,
	CategoryRelational,
	CategoryCalculus,
	CategoryArrow,
}

// Lookup table built from the registry at init time.
var byCodePoint map[rune]Entry

func init() {
	byCodePoint = make(map[rune]Entry, len(registry))
	for _, e := range registry {
		if prev, dup := byCodePoint[e.CodePoint]; dup {
			panic(fmt.Sprintf("sym: %U registered twice (%q and %q)", e.CodePoint, prev.Description, e.Description))
		}
		byCodePoint[e.CodePoint] = e
	}
}

// Lookup returns the entry for an exact code point.
func Lookup(r rune) (Entry, bool) {
	e, ok := byCodePoint[r]
	return e, ok
}

// ByCategory returns the entries of one category in registry order.
func ByCategory(c Category) []Entry {
	var out []Entry
	for _, e := range registry {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns every category in reference table order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// IsIdentChar reports whether r may continue an identifier: a letter, a
// number or the underscore.
func IsIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ReservedNames returns the sorted set of names generated for a Greek letter
// at identifier start, i.e. prefix + lowercase(name) for every Greek entry.
func ReservedNames(prefix string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range registry {
		if !e.Category.IsGreek() {
			continue
		}
		name := prefix + strings.ToLower(e.Replacement)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
