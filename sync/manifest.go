package sync

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/internal/util"
)

// DefaultManifestName is the manifest file created at the project root.
const DefaultManifestName = ".uf90-manifest.json"

// ErrCorruptManifest marks a manifest that exists but cannot be decoded.
// LoadManifest still returns a usable empty Manifest alongside it.
var ErrCorruptManifest = errors.New("corrupt manifest")

// Manifest maps a source path, relative to the project root and
// slash-separated, to the digest of the content last translated.
type Manifest map[string]string

// LoadManifest reads the manifest at path. A missing file is an empty
// manifest. An undecodable file yields an empty manifest and an error
// marked ErrCorruptManifest, so callers can warn and start over.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	m := Manifest{}
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Mark(
			errors.Wrapf(err, "failed to parse manifest %s", path),
			ErrCorruptManifest)
	}
	if m == nil {
		// A literal "null" decodes to a nil map.
		m = Manifest{}
	}
	return m, nil
}

// Save writes the manifest atomically as indented JSON with sorted keys.
func (m Manifest) Save(path string) error {
	if m == nil {
		m = Manifest{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	data = append(data, '\n')

	if err := util.WriteFileAtomic(path, data, util.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to save manifest %s", path)
	}
	return nil
}

// Paths returns the recorded source paths in sorted order.
func (m Manifest) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Prune drops entries whose path is not in keep and returns the removed
// paths in sorted order.
func (m Manifest) Prune(keep map[string]bool) []string {
	var removed []string
	for _, p := range m.Paths() {
		if !keep[p] {
			delete(m, p)
			removed = append(removed, p)
		}
	}
	return removed
}
