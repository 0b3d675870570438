package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/uf90/errors"
	uftest "github.com/teranos/uf90/internal/testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"prog.f90u", "prog.f90"},
		{"src/mod/heat.f90u", "src/mod/heat.f90"},
		{"PROG.F90U", "PROG.f90"},
		{"plain.f90", "plain.f90.f90"},
		{"noext", "noext.f90"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), OutputPath(filepath.FromSlash(tt.in)))
		})
	}
}

func TestTranslateFile(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{
		"heat.f90u": "real :: α = 1.0 ! thermal α\nT₀ = α × 2\n",
	})
	src := filepath.Join(root, "heat.f90u")

	res, err := TranslateFile(src, "", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, src, res.Source)
	assert.Equal(t, filepath.Join(root, "heat.f90"), res.Output)
	assert.Equal(t, 2, res.Lines)
	assert.Equal(t,
		"real :: uc_alpha = 1.0 ! thermal α\nT_0 = uc_alpha * 2\n",
		uftest.ReadFile(t, root, "heat.f90"))
}

func TestTranslateFile_ExplicitOutput(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{"a.f90u": "β"})

	dst := filepath.Join(root, "build", "out", "a.f90")
	res, err := TranslateFile(filepath.Join(root, "a.f90u"), dst, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, dst, res.Output)
	assert.Equal(t, "uc_beta", uftest.ReadFile(t, root, "build/out/a.f90"))
}

func TestTranslateFile_Overwrites(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{
		"a.f90u": "γ",
		"a.f90":  "stale content that is longer than the translation",
	})

	_, err := TranslateFile(filepath.Join(root, "a.f90u"), "", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "uc_gamma", uftest.ReadFile(t, root, "a.f90"))
}

func TestTranslateFile_SourceNotFound(t *testing.T) {
	root := t.TempDir()

	_, err := TranslateFile(filepath.Join(root, "missing.f90u"), "", DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
	assert.True(t, errors.IsSourceNotFound(err))
	assert.False(t, uftest.Exists(t, root, "missing.f90"))
}

func TestTranslateFile_CollisionWritesNothing(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{
		"bad.f90u": "α = 1\nuc_alpha = 2\n",
	})

	_, err := TranslateFile(filepath.Join(root, "bad.f90u"), "", DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsNamingCollision(err))
	assert.Contains(t, err.Error(), "bad.f90u")
	assert.False(t, uftest.Exists(t, root, "bad.f90"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestTranslateFile_RefusesSelfOverwrite(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{"a.f90u": "α"})
	src := filepath.Join(root, "a.f90u")

	_, err := TranslateFile(src, src, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, "α", uftest.ReadFile(t, root, "a.f90u"))
}

func TestTranslateFile_KeepsMode(t *testing.T) {
	root := uftest.WriteTree(t, t.TempDir(), map[string]string{"run.f90u": "π"})
	src := filepath.Join(root, "run.f90u")
	require.NoError(t, os.Chmod(src, 0600))

	res, err := TranslateFile(src, "", DefaultOptions())
	require.NoError(t, err)

	info, err := os.Stat(res.Output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestTranslateBytes(t *testing.T) {
	out, res, err := TranslateBytes([]byte("x² ≥ 0"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "x_p2 >= 0", string(out))
	assert.Equal(t, 2, res.Replaced)
}
