package operation

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lehigh-university-libraries/acextract/internal/catalog"
	"github.com/lehigh-university-libraries/acextract/internal/imageset"
	"github.com/lehigh-university-libraries/acextract/internal/scale"
)

// Mode selects the output layout
type Mode string

const (
	// ModeNormal writes every image directly under the output root
	ModeNormal Mode = "normal"
	// ModeDir rebuilds <name>.imageset directories with Contents.json
	ModeDir Mode = "dir"
)

// ParseMode maps a mode string to a Mode. Matching ignores case and
// surrounding whitespace; unrecognized values select ModeNormal.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDir:
		return ModeDir
	case ModeNormal:
		return ModeNormal
	default:
		slog.Debug("Unknown extraction mode, using normal", "mode", s)
		return ModeNormal
	}
}

// VectorPolicy decides what happens to renditions that only carry
// vector/document data.
type VectorPolicy string

const (
	// VectorSkip leaves vector renditions unwritten and reports them as skipped
	VectorSkip VectorPolicy = "skip"
	// VectorFail reports vector renditions as ErrCannotCreatePDFDocument
	VectorFail VectorPolicy = "fail"
)

// ParseVectorPolicy maps a policy string to a VectorPolicy. Unrecognized
// values select VectorSkip.
func ParseVectorPolicy(s string) VectorPolicy {
	if VectorPolicy(strings.ToLower(strings.TrimSpace(s))) == VectorFail {
		return VectorFail
	}
	return VectorSkip
}

// Extract writes every named image of a catalog to an output directory.
//
// Images are processed one at a time. In ModeDir later images of a set
// read the Contents.json written by earlier ones, so an output tree must not
// be shared by concurrent runs.
type Extract struct {
	output    string
	mode      Mode
	vector    VectorPolicy
	reporters []Reporter
}

// Option configures an Extract
type Option func(*Extract)

// WithVectorPolicy sets how vector-only renditions are handled
func WithVectorPolicy(p VectorPolicy) Option {
	return func(e *Extract) {
		e.vector = p
	}
}

// WithReporter registers an observer for per-image results
func WithReporter(r Reporter) Option {
	return func(e *Extract) {
		e.reporters = append(e.reporters, r)
	}
}

// NewExtract creates an extract operation. A leading "~" in output is
// expanded to the user's home directory.
func NewExtract(output, mode string, opts ...Option) *Extract {
	e := &Extract{
		output: expandTilde(output),
		mode:   ParseMode(mode),
		vector: VectorSkip,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Output returns the expanded output root
func (e *Extract) Output() string {
	return e.output
}

// Mode returns the effective layout mode
func (e *Extract) Mode() Mode {
	return e.mode
}

func (e *Extract) Read(ctx context.Context, c catalog.Catalog) error {
	if err := e.checkFolder(); err != nil {
		return err
	}

	sets, err := c.ImageSets(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate catalog: %w", err)
	}

	slog.Info("Extracting catalog", "sets", len(sets), "output", e.output, "mode", e.mode)

	for _, set := range sets {
		for _, img := range set.Images {
			if err := ctx.Err(); err != nil {
				return err
			}

			result := e.extract(set.Name, img)
			if result.Err != nil {
				slog.Debug("Image extraction failed", "set", set.Name, "name", result.Name, "error", result.Err)
			} else {
				slog.Debug("Image extracted", "set", set.Name, "name", result.Name, "path", result.Path, "skipped", result.Skipped)
			}
			for _, r := range e.reporters {
				r.Report(result)
			}
		}
	}

	return nil
}

func (e *Extract) checkFolder() error {
	info, err := os.Stat(e.output)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%w: %s", ErrOutputPathIsNotDirectory, e.output)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("failed to stat output path: %w", err)
	}

	if err := os.MkdirAll(e.output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func (e *Extract) extract(set string, img catalog.NamedImage) Result {
	result := Result{Set: set, Name: img.Name()}

	rendition, err := img.Rendition()
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrCannotSaveImage, err)
		return result
	}

	if rendition == nil {
		result.Err = ErrRenditionMissingData
		return result
	}

	if rendition.Raster == nil {
		switch {
		case rendition.Vector == nil:
			result.Err = ErrRenditionMissingData
		case e.vector == VectorFail:
			result.Err = ErrCannotCreatePDFDocument
		default:
			result.Skipped = true
		}
		return result
	}

	target, err := e.targetPath(result.Name)
	if err != nil {
		result.Err = err
		return result
	}

	if e.mode != ModeDir {
		if err := savePNG(target, rendition.Raster); err != nil {
			result.Err = err
			return result
		}
		result.Path = target
		return result
	}

	imgSet, err := prepareImageSet(target)
	if err != nil {
		result.Err = err
		return result
	}
	if err := savePNG(imgSet.image, rendition.Raster); err != nil {
		result.Err = err
		return result
	}
	result.Descriptor, err = imgSet.info.Write(imgSet.dir)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = imgSet.image
	return result
}

// targetPath joins name onto the output root, refusing names that escape it
func (e *Extract) targetPath(name string) (string, error) {
	path := filepath.Join(e.output, name)
	rel, err := filepath.Rel(e.output, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: invalid image name %q", ErrCannotSaveImage, name)
	}
	return path, nil
}

type imageSetTarget struct {
	dir   string
	image string
	info  *imageset.ImageDirInfo
}

// prepareImageSet loads or creates the descriptor for the image at path and
// merges the image into it. Nothing is written; the descriptor is persisted
// only after the image itself has been saved.
func prepareImageSet(path string) (*imageSetTarget, error) {
	filename := filepath.Base(path)
	s := scale.Detect(filename)
	pure := s.StripTail(strings.TrimSuffix(filename, filepath.Ext(filename)))
	dir := filepath.Join(filepath.Dir(path), pure+imageset.DirSuffix)

	info, err := imageset.LoadOrCreate(dir, filename)
	if err != nil {
		return nil, err
	}

	return &imageSetTarget{
		dir:   dir,
		image: filepath.Join(dir, filename),
		info:  info,
	}, nil
}

func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrCannotSaveImage, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotSaveImage, err)
	}

	if err := imaging.Encode(file, img, imaging.PNG); err != nil {
		file.Close()
		return fmt.Errorf("%w: failed to encode %s: %v", ErrCannotSaveImage, path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrCannotSaveImage, err)
	}
	return nil
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Unable to expand home directory", "path", path, "error", err)
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
