package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EmitCreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	sink := NewFS(root)

	err := sink.Emit("images/icons/logo.png", []byte("png-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "images", "icons", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestFS_Root(t *testing.T) {
	sink := NewFS("/tmp/out")
	assert.Equal(t, "/tmp/out", sink.Root())
}

func TestMemory_EmitAndGet(t *testing.T) {
	sink := NewMemory()

	require.NoError(t, sink.Emit("a.png", []byte("one")))
	require.NoError(t, sink.Emit("b/c.png", []byte("two")))

	assert.Equal(t, 2, sink.Len())
	assert.Equal(t, []string{"a.png", "b/c.png"}, sink.Paths())

	content, ok := sink.Get("b/c.png")
	require.True(t, ok)
	assert.Equal(t, []byte("two"), content)

	_, ok = sink.Get("missing.png")
	assert.False(t, ok)
}

func TestMemory_EmitCopiesContent(t *testing.T) {
	sink := NewMemory()
	buf := []byte("original")

	require.NoError(t, sink.Emit("a.bin", buf))
	buf[0] = 'X'

	content, ok := sink.Get("a.bin")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), content)
}
