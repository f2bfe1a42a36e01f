package assembly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assembly-Stage"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assembly-Stage", "Stack.template.json"), []byte("{\"a\":1}"), 0o644))

	files, err := Files(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "assembly-Stage/Stack.template.json", files[0].Key)
	assert.Equal(t, int64(7), files[0].Size)
	assert.Equal(t, "manifest.json", files[1].Key)
	assert.Equal(t, filepath.Join(dir, "manifest.json"), files[1].Path)
	assert.Equal(t, int64(9), TotalSize(files))
}

func TestFiles_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := Files(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "failed to list assembly files")
}
