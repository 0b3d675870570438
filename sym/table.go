package sym

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultTableFile is the file name used when the reference table is
// written without an explicit destination.
const DefaultTableFile = "unicode_mapping.txt"

// WriteReferenceTable writes every supported symbol grouped by category.
// The output is documentation only; nothing reads it back.
func WriteReferenceTable(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Unicode to ASCII Mapping Table")
	fmt.Fprintln(bw, "# For use in Fortran source (.f90u)")
	fmt.Fprintln(bw, "# Generated by uf90")
	fmt.Fprintln(bw)

	rule := strings.Repeat("-", 60)
	for _, c := range categoryOrder {
		entries := ByCategory(c)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n## %s\n%s\n", c.Label(), rule)
		for _, e := range entries {
			fmt.Fprintf(bw, "%-3s → %-15s (%s)\n", e.Glyph(), e.Replacement, e.Description)
		}
	}

	return bw.Flush()
}
