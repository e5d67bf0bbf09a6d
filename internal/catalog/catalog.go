package catalog

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Catalog enumerates the image sets of an asset catalog
type Catalog interface {
	ImageSets(ctx context.Context) ([]ImageSet, error)
}

// ImageSet groups the renditions of one logical image
type ImageSet struct {
	Name   string
	Images []NamedImage
}

// NamedImage is a single rendition of an image set
type NamedImage interface {
	Name() string
	Rendition() (*Rendition, error)
}

// Rendition holds the data behind a named image. At most one of Raster and
// Vector is set; neither means the catalog carries no data for the image.
type Rendition struct {
	Raster image.Image
	Vector []byte
}

// Open returns the catalog reader matching path
func Open(path string) (Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if info.IsDir() {
		return NewDirectory(path), nil
	}

	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return NewParquet(path), nil
	case ".yaml", ".yml":
		return NewManifest(path), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: directory, .yaml, .parquet)", ext)
	}
}

var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

var vectorExts = map[string]bool{
	".pdf": true,
	".svg": true,
}

// fileImage reads its rendition from a file on disk
type fileImage struct {
	name string
	path string
}

func (f *fileImage) Name() string {
	return f.name
}

func (f *fileImage) Rendition() (*Rendition, error) {
	if f.path == "" {
		return &Rendition{}, nil
	}

	ext := strings.ToLower(filepath.Ext(f.path))
	if vectorExts[ext] {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read vector data: %w", err)
		}
		return &Rendition{Vector: data}, nil
	}

	img, err := imaging.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	slog.Debug("Decoded raster", "path", f.path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return &Rendition{Raster: img}, nil
}

// memoryImage holds an encoded rendition in memory
type memoryImage struct {
	name string
	kind string
	data []byte
}

func (m *memoryImage) Name() string {
	return m.name
}

func (m *memoryImage) Rendition() (*Rendition, error) {
	if len(m.data) == 0 {
		return &Rendition{}, nil
	}

	switch m.kind {
	case KindVector:
		return &Rendition{Vector: m.data}, nil
	case KindRaster, "":
		img, err := imaging.Decode(bytes.NewReader(m.data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode raster data: %w", err)
		}
		return &Rendition{Raster: img}, nil
	default:
		return nil, fmt.Errorf("unknown rendition kind: %s", m.kind)
	}
}
