package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldOutputJSON(t *testing.T) {
	assert.False(t, ShouldOutputJSON(nil))

	withFlag := &cobra.Command{Use: "sync"}
	withFlag.Flags().Bool("json", false, "")
	assert.False(t, ShouldOutputJSON(withFlag))

	require.NoError(t, withFlag.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(withFlag))

	root := &cobra.Command{Use: "uf90"}
	root.PersistentFlags().Bool("json", true, "")
	child := &cobra.Command{Use: "table"}
	root.AddCommand(child)
	assert.True(t, ShouldOutputJSON(child))

	bare := &cobra.Command{Use: "bare"}
	assert.False(t, ShouldOutputJSON(bare))
}

func TestWriteJSON(t *testing.T) {
	orig := compactJSON
	defer func() { compactJSON = orig }()

	v := map[string]int{"pending": 2}

	compactJSON = func() bool { return true }
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, v))
	assert.Equal(t, "{\"pending\":2}\n", buf.String())

	compactJSON = func() bool { return false }
	buf.Reset()
	require.NoError(t, WriteJSON(&buf, v))
	assert.Equal(t, "{\n  \"pending\": 2\n}\n", buf.String())
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, make(chan int))
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil))
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}
