package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestSpec is the YAML document describing a catalog
type ManifestSpec struct {
	Sets []ManifestSet `yaml:"sets"`
}

// ManifestSet is one image set entry of a manifest
type ManifestSet struct {
	Name   string          `yaml:"name"`
	Images []ManifestImage `yaml:"images"`
}

// ManifestImage names a rendition and the file holding its data. File is
// relative to the manifest; an empty File means the rendition has no data.
type ManifestImage struct {
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// Manifest reads a catalog from a YAML manifest
type Manifest struct {
	path string
}

// NewManifest creates a manifest catalog
func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// ImageSets loads the manifest and resolves file paths
func (m *Manifest) ImageSets(ctx context.Context) ([]ImageSet, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var spec ManifestSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	base := filepath.Dir(m.path)
	sets := make([]ImageSet, 0, len(spec.Sets))
	for _, s := range spec.Sets {
		set := ImageSet{Name: s.Name, Images: make([]NamedImage, 0, len(s.Images))}
		for _, img := range s.Images {
			if img.Name == "" {
				return nil, fmt.Errorf("manifest set %q has an image without a name", s.Name)
			}
			path := img.File
			if path != "" && !filepath.IsAbs(path) {
				path = filepath.Join(base, path)
			}
			set.Images = append(set.Images, &fileImage{name: img.Name, path: path})
		}
		sets = append(sets, set)
	}

	slog.Debug("Loaded manifest", "path", m.path, "sets", len(sets))
	return sets, nil
}
