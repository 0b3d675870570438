// Package sync keeps generated ASCII sources in step with their Unicode
// originals.
//
// A project is a directory tree of .f90u files. Each pass walks the tree,
// compares every source's SHA-256 digest with the one recorded in the
// project manifest, and retranslates only the files that changed (or whose
// output went missing). The manifest is a flat JSON object keyed by
// slash-separated paths relative to the project root.
package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/teranos/uf90/errors"
)

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileDigest streams path through SHA-256.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewSourceNotFoundError(path)
		}
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
