package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	wrapped := Wrapf(fs.ErrPermission, "write %s", "out.f90")

	assert.Contains(t, wrapped.Error(), "write out.f90")
	assert.True(t, Is(wrapped, fs.ErrPermission))
}

func TestSourceNotFound(t *testing.T) {
	err := NewSourceNotFoundError("missing.f90u")

	assert.True(t, IsSourceNotFound(err))
	assert.False(t, IsNamingCollision(err))
	assert.Contains(t, err.Error(), "missing.f90u")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "existing files")
}

func TestInvalidConfig(t *testing.T) {
	err := NewInvalidConfigError("sync.workers must be >= 0, got %d", -2)

	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "got -2")
}

type collision struct{ name string }

func (c *collision) Error() string        { return "reserved " + c.name }
func (c *collision) Is(target error) bool { return target == ErrNamingCollision }

func TestCustomTypeMatchesSentinel(t *testing.T) {
	err := WithHint(&collision{name: "uc_alpha"}, "use α")

	assert.True(t, IsNamingCollision(err))

	var target *collision
	require.True(t, As(err, &target))
	assert.Equal(t, "uc_alpha", target.name)
}

func TestMarkKeepsMessage(t *testing.T) {
	err := Mark(New("line 3: non-ASCII"), ErrUnmappedSymbol)

	assert.True(t, Is(err, ErrUnmappedSymbol))
	assert.Equal(t, "line 3: non-ASCII", err.Error())
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsSourceNotFound(nil))
	assert.False(t, IsNamingCollision(nil))
}

func TestErrorChaining(t *testing.T) {
	err := Wrap(ErrNamingCollision, "line 1")
	err = WithHint(err, "helpful hint")
	err = WithDetail(err, "detailed info")
	err = Wrap(err, "translate a.f90u")

	assert.True(t, Is(err, ErrNamingCollision))
	assert.Contains(t, err.Error(), "translate a.f90u")
	assert.Contains(t, GetAllHints(err), "helpful hint")
	assert.Contains(t, GetAllDetails(err), "detailed info")
}

func ExampleWithHint() {
	err := New("reserved identifier")
	err = WithHint(err, "write α instead of uc_alpha")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: write α instead of uc_alpha
}
