package am

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncode_RoundTrips(t *testing.T) {
	cfg := validConfig()
	cfg.Sync.Extensions = []string{".f90u", ".uf"}

	t.Run("toml", func(t *testing.T) {
		data, err := Encode(&cfg, FormatTOML)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# uf90 configuration\n"))
		assert.Contains(t, string(data), "[translate]")

		var back Config
		require.NoError(t, toml.Unmarshal(data, &back))
		assert.Equal(t, cfg, back)
	})

	t.Run("json", func(t *testing.T) {
		data, err := Encode(&cfg, FormatJSON)
		require.NoError(t, err)

		var back Config
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, cfg, back)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := Encode(&cfg, FormatYAML)
		require.NoError(t, err)

		var back Config
		require.NoError(t, yaml.Unmarshal(data, &back))
		assert.Equal(t, cfg, back)
	})
}

func TestEncode_UnknownFormat(t *testing.T) {
	cfg := validConfig()
	_, err := Encode(&cfg, "ini")
	assert.Error(t, err)
}

func TestInitProjectConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig()

	path, err := InitProjectConfig(dir, &cfg, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectConfigName), path)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)

	// Second call without force refuses
	_, err = InitProjectConfig(dir, &cfg, false)
	assert.Error(t, err)
}

func TestInitProjectConfig_ForceRotatesBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName)
	cfg := validConfig()

	for i, tool := range []string{"one", "two", "three", "four", "five"} {
		cfg.Build.Tool = tool
		_, err := InitProjectConfig(dir, &cfg, i > 0)
		require.NoError(t, err)
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Contains(t, read(path), "five")
	assert.Contains(t, read(path+".back1"), "four")
	assert.Contains(t, read(path+".back2"), "three")
	assert.Contains(t, read(path+".back3"), "two")
}
