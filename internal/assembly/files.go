package assembly

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// File is a regular file inside an assembly directory.
type File struct {
	// Key is the slash-separated path relative to the assembly root.
	Key  string
	Path string
	Size int64
}

// Files lists every regular file under dir in lexical order.
func Files(dir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{
			Key:  filepath.ToSlash(rel),
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assembly files in %s: %w", dir, err)
	}
	return files, nil
}

// TotalSize sums the size of files.
func TotalSize(files []File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
