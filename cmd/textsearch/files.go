package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	internalErrors "github.com/kestrelsearch/textsearch/internal/errors"
)

// maxFileSizeForScan mirrors the collaborator contract in spec §6: the directory scanner
// only ever hands the core files of at most 200 MiB; the core's own 100 MiB cap (§4.3)
// is enforced downstream in internal/indexing.
const maxFileSizeForScan = 200 * 1024 * 1024

// osDirectoryScanner implements services.DirectoryScanner over the local filesystem.
type osDirectoryScanner struct{}

// Scan returns every *.txt file directly under dir, sorted by ascending size.
func (osDirectoryScanner) Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, internalErrors.NewDataDirNotFoundError(dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, internalErrors.NewDataDirNotADirectoryError(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type sized struct {
		path string
		size int64
	}
	var candidates []sized
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		fi, err := entry.Info()
		if err != nil || fi.Size() > maxFileSizeForScan {
			continue
		}
		candidates = append(candidates, sized{path: filepath.Join(dir, entry.Name()), size: fi.Size()})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].size < candidates[j].size })

	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths, nil
}

// osFileReader implements services.FileReader over the local filesystem.
type osFileReader struct{}

func (osFileReader) Read(path string) ([]byte, error) {
	return os.ReadFile(path) // #nosec G304 -- path comes from osDirectoryScanner's own scan of --data-dir
}
