package catalog

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/parquet-go/parquet-go"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	img := imaging.New(w, h, color.NRGBA{R: 255, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.NRGBA{B: 255, A: 255})
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(manifest, []byte("sets: []\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	text := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(text, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if c, err := Open(dir); err != nil {
		t.Errorf("Open(dir) failed: %v", err)
	} else if _, ok := c.(*Directory); !ok {
		t.Errorf("Expected *Directory, got %T", c)
	}

	if c, err := Open(manifest); err != nil {
		t.Errorf("Open(manifest) failed: %v", err)
	} else if _, ok := c.(*Manifest); !ok {
		t.Errorf("Expected *Manifest, got %T", c)
	}

	if _, err := Open(text); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}

	if _, err := Open(filepath.Join(dir, "missing.parquet")); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Assets")
	writePNG(t, filepath.Join(root, "icons", "add.png"), 2, 2)
	writePNG(t, filepath.Join(root, "icons", "add@2x.png"), 4, 4)
	writePNG(t, filepath.Join(root, "logo.png"), 1, 1)
	if err := os.WriteFile(filepath.Join(root, "icons", "shape.pdf"), []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "icons", "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	writePNG(t, filepath.Join(root, ".hidden", "skip.png"), 1, 1)

	sets, err := NewDirectory(root).ImageSets(context.Background())
	if err != nil {
		t.Fatalf("ImageSets failed: %v", err)
	}

	if len(sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(sets))
	}
	if sets[0].Name != "icons" || len(sets[0].Images) != 3 {
		t.Fatalf("Unexpected set %s with %d images", sets[0].Name, len(sets[0].Images))
	}
	if sets[1].Name != "Assets" || len(sets[1].Images) != 1 {
		t.Errorf("Unexpected root set %s with %d images", sets[1].Name, len(sets[1].Images))
	}

	r, err := sets[0].Images[1].Rendition()
	if err != nil {
		t.Fatalf("Rendition failed: %v", err)
	}
	if sets[0].Images[1].Name() != "add@2x.png" || r.Raster == nil || r.Raster.Bounds().Dx() != 4 {
		t.Errorf("Unexpected rendition for %s", sets[0].Images[1].Name())
	}

	r, err = sets[0].Images[2].Rendition()
	if err != nil {
		t.Fatalf("Rendition failed: %v", err)
	}
	if r.Raster != nil || string(r.Vector) != "%PDF-1.4" {
		t.Errorf("Expected vector rendition for shape.pdf")
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img", "star@3x.png"), 3, 3)

	manifest := `sets:
  - name: star
    images:
      - name: star@3x.png
        file: img/star@3x.png
      - name: star@2x.png
`
	path := filepath.Join(dir, "catalog.yml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	sets, err := NewManifest(path).ImageSets(context.Background())
	if err != nil {
		t.Fatalf("ImageSets failed: %v", err)
	}
	if len(sets) != 1 || len(sets[0].Images) != 2 {
		t.Fatalf("Unexpected sets: %+v", sets)
	}

	r, err := sets[0].Images[0].Rendition()
	if err != nil {
		t.Fatalf("Rendition failed: %v", err)
	}
	if r.Raster == nil {
		t.Error("Expected raster rendition")
	}

	r, err = sets[0].Images[1].Rendition()
	if err != nil {
		t.Fatalf("Rendition failed: %v", err)
	}
	if r.Raster != nil || r.Vector != nil {
		t.Error("Expected empty rendition for image without file")
	}
}

func TestManifestInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("sets: [{images: [{file: a.png}]}]\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewManifest(path).ImageSets(context.Background()); err == nil {
		t.Error("Expected error for unnamed image, got nil")
	}
}

func TestParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")
	rows := []RenditionRow{
		{Set: "add", Name: "add.png", Kind: KindRaster, Data: encodePNG(t, 2, 2)},
		{Set: "logo", Name: "logo.pdf", Kind: KindVector, Data: []byte("%PDF-1.4")},
		{Set: "add", Name: "add@2x.png", Kind: KindRaster, Data: encodePNG(t, 4, 4)},
		{Set: "logo", Name: "logo@2x.png", Kind: KindRaster},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("Failed to write parquet file: %v", err)
	}

	sets, err := NewParquet(path).ImageSets(context.Background())
	if err != nil {
		t.Fatalf("ImageSets failed: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(sets))
	}
	if sets[0].Name != "add" || len(sets[0].Images) != 2 {
		t.Errorf("Unexpected set %s with %d images", sets[0].Name, len(sets[0].Images))
	}

	tests := []struct {
		image  NamedImage
		name   string
		raster bool
		vector bool
	}{
		{sets[0].Images[1], "add@2x.png", true, false},
		{sets[1].Images[0], "logo.pdf", false, true},
		{sets[1].Images[1], "logo@2x.png", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.image.Name() != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, tt.image.Name())
			}
			r, err := tt.image.Rendition()
			if err != nil {
				t.Fatalf("Rendition failed: %v", err)
			}
			if (r.Raster != nil) != tt.raster || (r.Vector != nil) != tt.vector {
				t.Errorf("Unexpected rendition contents: raster=%v vector=%v", r.Raster != nil, r.Vector != nil)
			}
		})
	}
}

func TestMemoryImageCorruptData(t *testing.T) {
	img := &memoryImage{name: "bad.png", kind: KindRaster, data: []byte("not a png")}
	if _, err := img.Rendition(); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
