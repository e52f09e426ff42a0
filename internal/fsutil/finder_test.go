package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{
		"home.json",
		"auth/login.json",
		"auth/notes.txt",
		".hidden.json",
		".cache/x.json",
		"Resources/strings.json",
	} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}

	files, err := FindFiles(root, ".json", func(name string) bool { return name == "Resources" })
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "auth", "login.json"),
		filepath.Join(root, "home.json"),
	}, files)

	_, err = FindFiles(filepath.Join(root, "missing"), ".json", nil)
	assert.Error(t, err)
}

func TestFindFiles_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { FindFiles(t.TempDir(), "", nil) })
}
