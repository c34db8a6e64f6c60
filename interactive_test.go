package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDirectories_SkipsHidden(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"docs/api", ".git/objects", "src"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0755))
	}
	writeFile(t, root, "docs/readme.md", []byte("x"))

	dirs, err := listDirectories(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "docs", "api"),
		filepath.Join(root, "src"),
	}, dirs)
}

func TestPreviewDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("a"))
	writeFile(t, root, "b.txt", []byte("b"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))

	preview := previewDirectory(root)
	assert.Contains(t, preview, "Files: 2")
	assert.Contains(t, preview, "Subfolders: 1")

	assert.Contains(t, previewDirectory(filepath.Join(root, "missing")), "Error reading folder")
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
	assert.False(t, isHidden("src"))
}
