package am

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingByKey(intro *ConfigIntrospection, key string) (SettingInfo, bool) {
	for _, s := range intro.Settings {
		if s.Key == key {
			return s, true
		}
	}
	return SettingInfo{}, false
}

func TestGetConfigIntrospection(t *testing.T) {
	_, home, _ := isolate(t)
	userFile := filepath.Join(home, ".uf90", "config.toml")
	writeFile(t, userFile, "[build]\ntool = \"make\"\n")
	t.Setenv("UF90_TRANSLATE_STRICT", "true")

	intro, err := GetConfigIntrospection()
	require.NoError(t, err)

	tool, ok := settingByKey(intro, "build.tool")
	require.True(t, ok)
	assert.Equal(t, SourceUser, tool.Source)
	assert.Equal(t, userFile, tool.SourcePath)
	assert.Equal(t, "make", tool.Value)

	prefix, ok := settingByKey(intro, "translate.identifier_prefix")
	require.True(t, ok)
	assert.Equal(t, SourceDefault, prefix.Source)

	strict, ok := settingByKey(intro, "translate.strict")
	require.True(t, ok)
	assert.Equal(t, SourceEnvironment, strict.Source)
	assert.Equal(t, "UF90_TRANSLATE_STRICT", strict.SourcePath)
}

func TestFlattenSettingsWithSources(t *testing.T) {
	settings := map[string]interface{}{
		"sync": map[string]interface{}{
			"workers":  2,
			"manifest": "m.json",
		},
		"build": map[string]interface{}{"tool": "fpm"},
	}
	sources := map[string]SourceInfo{
		"sync.workers": {Source: SourceProject, Path: "/p/uf90.toml"},
	}

	intro := &ConfigIntrospection{}
	flattenSettingsWithSources(settings, "", intro, sources)

	require.Len(t, intro.Settings, 3)
	// Sorted by key at every level
	assert.Equal(t, "build.tool", intro.Settings[0].Key)
	assert.Equal(t, "sync.manifest", intro.Settings[1].Key)
	assert.Equal(t, "sync.workers", intro.Settings[2].Key)
	assert.Equal(t, SourceProject, intro.Settings[2].Source)
	assert.Equal(t, SourceDefault, intro.Settings[0].Source)
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "UF90_SYNC_OUTPUT_EXTENSION", EnvVarName("sync.output_extension"))
}
