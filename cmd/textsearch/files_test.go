package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/kestrelsearch/textsearch/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestOSDirectoryScanner_FiltersAndSortsBySize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.txt", "aaaaaaaaaa")
	writeFile(t, dir, "small.txt", "a")
	writeFile(t, dir, "ignore.md", "not indexed")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	paths, err := osDirectoryScanner{}.Scan(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "small.txt"), paths[0])
	assert.Equal(t, filepath.Join(dir, "big.txt"), paths[1])
}

func TestOSDirectoryScanner_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shout.TXT", "hello")

	paths, err := osDirectoryScanner{}.Scan(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "shout.TXT"), paths[0])
}

func TestOSDirectoryScanner_MissingDirReturnsDataDirError(t *testing.T) {
	_, err := osDirectoryScanner{}.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	var dataDirErr *internalErrors.DataDirError
	assert.ErrorAs(t, err, &dataDirErr)
}

func TestOSDirectoryScanner_PathIsAFileReturnsDataDirError(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "notadir.txt")
	writeFile(t, dir, "notadir.txt", "content")

	_, err := osDirectoryScanner{}.Scan(filePath)
	require.Error(t, err)
	var dataDirErr *internalErrors.DataDirError
	assert.ErrorAs(t, err, &dataDirErr)
}

func TestOSFileReader_ReadsContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "hello world")

	data, err := osFileReader{}.Read(filepath.Join(dir, "doc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestOSFileReader_MissingFileReturnsError(t *testing.T) {
	_, err := osFileReader{}.Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
