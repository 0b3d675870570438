package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/uf90/am"
	"github.com/teranos/uf90/errors"
)

func TestAmShow_Formats(t *testing.T) {
	cfg := defaultConfig(t)
	useConfig(t, cfg)

	stdout, _, err := execute(t, newAmCmd(), "show")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# uf90 configuration\n"))
	assert.Contains(t, stdout, "[translate]")

	stdout, _, err = execute(t, newAmCmd(), "show", "--format", "json")
	require.NoError(t, err)
	var back am.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &back))
	assert.Equal(t, *cfg, back)

	stdout, _, err = execute(t, newAmCmd(), "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "identifier_prefix: uc_")

	_, _, err = execute(t, newAmCmd(), "show", "--format", "ini")
	assert.Error(t, err)
}

func TestAmValidate(t *testing.T) {
	cfg := defaultConfig(t)
	useConfig(t, cfg)

	stdout, _, err := execute(t, newAmCmd(), "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")

	cfg.Translate.CommentMarker = "!!"
	_, _, err = execute(t, newAmCmd(), "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestAmGet(t *testing.T) {
	orig := configValue
	configValue = func(key string) (interface{}, error) {
		if key == "sync.workers" {
			return 4, nil
		}
		return nil, errors.Newf("unknown configuration key %q", key)
	}
	t.Cleanup(func() { configValue = orig })

	stdout, _, err := execute(t, newAmCmd(), "get", "sync.workers")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	_, _, err = execute(t, newAmCmd(), "get", "sync.nope")
	assert.Error(t, err)
}

func TestAmWhere(t *testing.T) {
	orig := configIntrospection
	configIntrospection = func() (*am.ConfigIntrospection, error) {
		return &am.ConfigIntrospection{Settings: []am.SettingInfo{
			{Key: "build.tool", Value: "make", Source: am.SourceProject, SourcePath: "/p/uf90.toml"},
			{Key: "sync.workers", Value: 4, Source: am.SourceDefault, SourcePath: "built-in default"},
			{Key: "translate.strict", Value: "true", Source: am.SourceEnvironment, SourcePath: "UF90_TRANSLATE_STRICT"},
		}}, nil
	}
	t.Cleanup(func() { configIntrospection = orig })

	stdout, _, err := execute(t, newAmCmd(), "where")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Configuration cascade")
	assert.Contains(t, stdout, "project: 1 settings from /p/uf90.toml")
	assert.Contains(t, stdout, "  build.tool = make")
	assert.Contains(t, stdout, "default: 1 settings")
	assert.Contains(t, stdout, "  translate.strict = true (UF90_TRANSLATE_STRICT)")
	// Defaults come before project values
	assert.Less(t, strings.Index(stdout, "default: 1"), strings.Index(stdout, "project: 1"))

	stdout, _, err = execute(t, newAmCmd(), "where", "--json")
	require.NoError(t, err)
	var intro am.ConfigIntrospection
	require.NoError(t, json.Unmarshal([]byte(stdout), &intro))
	assert.Len(t, intro.Settings, 3)
}

func TestAmInit(t *testing.T) {
	dir := t.TempDir()
	orig := workingDir
	workingDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { workingDir = orig })

	path := filepath.Join(dir, am.ProjectConfigName)

	stdout, _, err := execute(t, newAmCmd(), "init")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(stdout))

	loaded, err := am.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, *defaultConfig(t), *loaded)

	_, _, err = execute(t, newAmCmd(), "init")
	assert.Error(t, err)

	_, _, err = execute(t, newAmCmd(), "init", "--force")
	require.NoError(t, err)
	_, err = os.Stat(path + ".back1")
	assert.NoError(t, err)
}
