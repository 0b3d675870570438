package sync

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/uf90/errors"
	uftest "github.com/teranos/uf90/internal/testing"
)

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), DefaultManifestName))
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.NotNil(t, m)
}

func TestLoadManifest_Corrupt(t *testing.T) {
	for name, content := range map[string]string{
		"truncated":  `{"a.f90u": "ab`,
		"wrong type": `["a.f90u"]`,
		"bad value":  `{"a.f90u": 3}`,
	} {
		t.Run(name, func(t *testing.T) {
			root := uftest.WriteTree(t, t.TempDir(), map[string]string{DefaultManifestName: content})

			m, err := LoadManifest(filepath.Join(root, DefaultManifestName))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptManifest))
			assert.NotNil(t, m)
			assert.Empty(t, m)
		})
	}
}

func TestLoadManifest_Null(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{DefaultManifestName: "null"})

	m, err := LoadManifest(filepath.Join(root, DefaultManifestName))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestManifest_SaveFormat(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, DefaultManifestName)

	m := Manifest{"src/z.f90u": "22", "a.f90u": "11"}
	require.NoError(t, m.Save(path))

	assert.Equal(t, "{\n  \"a.f90u\": \"11\",\n  \"src/z.f90u\": \"22\"\n}\n",
		uftest.ReadFile(t, root, DefaultManifestName))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestManifest_SaveNil(t *testing.T) {
	root := t.TempDir()
	var m Manifest
	require.NoError(t, m.Save(filepath.Join(root, "m.json")))
	assert.Equal(t, "{}\n", uftest.ReadFile(t, root, "m.json"))
}

func TestManifest_Prune(t *testing.T) {
	m := Manifest{"c": "3", "a": "1", "b": "2"}

	removed := m.Prune(map[string]bool{"b": true})
	assert.Equal(t, []string{"a", "c"}, removed)
	assert.Equal(t, Manifest{"b": "2"}, m)
	assert.Equal(t, []string{"b"}, m.Paths())

	assert.Empty(t, m.Prune(map[string]bool{"b": true}))
}
