package display

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ShouldOutputJSON determines if a command should output JSON based on its
// --json flag
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	if f := cmd.Flags().Lookup("json"); f != nil {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Fall back to a persistent --json on the root, if one exists
	if f := cmd.Root().PersistentFlags().Lookup("json"); f != nil {
		globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
		return globalFlag
	}
	return false
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether colored output should go to f.
// NO_COLOR (any value) disables colors, as does a non-terminal f.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// OutputJSON marshals and prints JSON to stdout using display.MarshalJSON
func OutputJSON(v interface{}) error {
	return WriteJSON(os.Stdout, v)
}

// WriteJSON marshals v with MarshalJSON and writes it with a trailing
// newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
