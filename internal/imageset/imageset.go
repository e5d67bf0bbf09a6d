package imageset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/acextract/internal/scale"
)

const (
	// ContentsFile is the descriptor filename inside an .imageset directory
	ContentsFile = "Contents.json"
	// DirSuffix is appended to the logical image name to form the directory
	DirSuffix = ".imageset"

	idiomUniversal = "universal"
	infoAuthor     = "xcode"
	infoVersion    = 1
)

// Elem is one scale slot of an image set
type Elem struct {
	Filename string      `json:"filename,omitempty"`
	Idiom    string      `json:"idiom"`
	Scale    scale.Scale `json:"scale"`
}

// Info is the authoring stamp Xcode writes into every descriptor
type Info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// ImageDirInfo is the Contents.json document of an .imageset directory.
//
// Directory-mode extraction rewrites this file with a read-modify-write
// cycle and no locking, so a single output tree must only have one writer.
type ImageDirInfo struct {
	Images []Elem `json:"images"`
	Info   Info   `json:"info"`
}

// CanonicalSlots returns one placeholder per scale with filename assigned
// to the slot of its detected scale.
func CanonicalSlots(filename string) []Elem {
	slots := emptySlots()
	slots[scale.Detect(filename).Index()].Filename = filename
	return slots
}

func emptySlots() []Elem {
	slots := make([]Elem, 0, scale.Count)
	for _, s := range scale.All() {
		slots = append(slots, Elem{Idiom: idiomUniversal, Scale: s})
	}
	return slots
}

// New creates a descriptor for a directory that has no Contents.json yet
func New(filename string) *ImageDirInfo {
	return &ImageDirInfo{
		Images: CanonicalSlots(filename),
		Info:   Info{Author: infoAuthor, Version: infoVersion},
	}
}

// Parse decodes a descriptor. Slots are placed by scale into the canonical
// positions; scales missing from the document become placeholders.
func Parse(data []byte) (*ImageDirInfo, error) {
	var raw ImageDirInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		if errors.Is(err, scale.ErrInvalidData) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", scale.ErrInvalidData, err)
	}

	info := &ImageDirInfo{
		Images: emptySlots(),
		Info:   Info{Author: infoAuthor, Version: infoVersion},
	}
	for _, elem := range raw.Images {
		if !elem.Scale.Valid() {
			return nil, fmt.Errorf("%w: image entry without scale", scale.ErrInvalidData)
		}
		slot := &info.Images[elem.Scale.Index()]
		slot.Filename = elem.Filename
	}
	return info, nil
}

// Load reads and parses the descriptor at path
func Load(path string) (*ImageDirInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	info, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return info, nil
}

// LoadOrCreate returns the descriptor of dir updated with filename, or a
// fresh one when dir has no Contents.json.
func LoadOrCreate(dir, filename string) (*ImageDirInfo, error) {
	path := filepath.Join(dir, ContentsFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Creating descriptor", "path", path, "filename", filename)
		return New(filename), nil
	}

	info, err := Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Merging into existing descriptor", "path", path, "filename", filename)
	info.Update(filename)
	return info, nil
}

// Update assigns filename to the slot of its detected scale
func (d *ImageDirInfo) Update(filename string) {
	s := scale.Detect(filename)
	d.Images[s.Index()].Filename = filename
}

// Slot returns the element for s
func (d *ImageDirInfo) Slot(s scale.Scale) Elem {
	return d.Images[s.Index()]
}

// Marshal renders the descriptor as indented JSON
func (d *ImageDirInfo) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	return append(data, '\n'), nil
}

// Write replaces dir/Contents.json, creating dir when needed
func (d *ImageDirInfo) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image set directory: %w", err)
	}

	data, err := d.Marshal()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ContentsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write descriptor: %w", err)
	}
	return path, nil
}
