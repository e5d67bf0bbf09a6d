package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Directory reads loose image files from a directory tree. Every directory
// holding at least one image file is an image set named after its path
// relative to the root.
type Directory struct {
	root string
}

// NewDirectory creates a directory catalog rooted at root
func NewDirectory(root string) *Directory {
	return &Directory{root: root}
}

// ImageSets walks the tree in lexical order
func (d *Directory) ImageSets(ctx context.Context) ([]ImageSet, error) {
	slog.Debug("Scanning catalog directory", "root", d.root)

	var sets []ImageSet
	index := make(map[string]int)

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if strings.HasPrefix(entry.Name(), ".") && path != d.root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !rasterExts[ext] && !vectorExts[ext] {
			return nil
		}

		setName, err := filepath.Rel(d.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if setName == "." {
			setName = filepath.Base(d.root)
		}

		i, ok := index[setName]
		if !ok {
			i = len(sets)
			index[setName] = i
			sets = append(sets, ImageSet{Name: setName})
		}
		sets[i].Images = append(sets[i].Images, &fileImage{name: entry.Name(), path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog directory: %w", err)
	}

	slog.Debug("Finished scanning catalog directory", "sets", len(sets))
	return sets, nil
}
