package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[01/01/20, 09:00:00 AM] A: hi\n"), 0o644))
}

func TestScanRoot_Directory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "alice", "_chat.txt"))
	touch(t, filepath.Join(root, "bob.TXT"))
	touch(t, filepath.Join(root, "notes.md"))
	touch(t, filepath.Join(root, ".trash", "old.txt"))

	files, err := ScanRoot(root)
	require.NoError(t, err)

	var keys []string
	for _, f := range files {
		keys = append(keys, f.Key)
		assert.NotZero(t, f.Size)
	}
	assert.Equal(t, []string{"alice/_chat", "bob"}, keys)
}

func TestScanRoot_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.log")
	touch(t, path)

	files, err := ScanRoot(path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "export", files[0].Key)
	assert.Equal(t, path, files[0].Path)
}

func TestScanRoot_Missing(t *testing.T) {
	_, err := ScanRoot(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, os.IsNotExist(err))
}
