package display

import (
	"encoding/json"
	"os"
)

// compactJSON is consulted by MarshalJSON; tests override it.
var compactJSON = func() bool { return !IsTerminal(os.Stdout) }

// MarshalJSON marshals JSON with pretty formatting for a terminal and
// compact single-line formatting when stdout is piped, so scripts can read
// one document per line.
func MarshalJSON(v interface{}) ([]byte, error) {
	if compactJSON() {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
