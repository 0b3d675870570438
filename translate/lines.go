package translate

import "strings"

// line is one physical line split from its terminator.
type line struct {
	body string
	eol  string // "\n", "\r\n", "\r" or "" for an unterminated last line
}

// splitLines cuts text into lines, keeping each terminator so output can
// reproduce the original line-ending style exactly.
func splitLines(text string) []line {
	var lines []line
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, line{body: text[start:i], eol: "\n"})
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				lines = append(lines, line{body: text[start:i], eol: "\r\n"})
				i++
			} else {
				lines = append(lines, line{body: text[start:i], eol: "\r"})
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, line{body: text[start:]})
	}
	return lines
}

// SplitComment divides a line at the first comment marker. The comment keeps
// the marker; when there is none the whole line is code.
//
// Quoted strings are not recognized: a marker inside a string literal still
// starts the comment region.
func SplitComment(s string, marker rune) (code, comment string) {
	i := strings.IndexRune(s, marker)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
