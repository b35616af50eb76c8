package texture

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks formats when several files share a stem; lower wins.
var extPriority = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".bmp":  3,
	".jpg":  4,
	".jpeg": 4,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir recursively for supported image files. A missing
// directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath maps a reference to a file. An existing file path is used
// as is; anything else is reduced to its stem and looked up in the index
// (so "matcap-crystal", "Matcap-Crystal.jpg" and "x/matcap-crystal" all
// find assets/matcap-crystal.png).
func (idx *Index) ResolvePath(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, true
	}
	ref = strings.ReplaceAll(ref, "\\", "/")
	base := filepath.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
