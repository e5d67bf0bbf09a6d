package operation

import (
	"errors"

	"github.com/lehigh-university-libraries/acextract/internal/scale"
)

var (
	// ErrOutputPathIsNotDirectory is returned when the output root exists as a file
	ErrOutputPathIsNotDirectory = errors.New("output path is not a directory")

	// ErrRenditionMissingData is returned when a rendition has neither raster nor vector data
	ErrRenditionMissingData = errors.New("rendition missing data")

	// ErrCannotSaveImage is returned when raster data cannot be fetched, encoded or written
	ErrCannotSaveImage = errors.New("cannot save image")

	// ErrCannotCreatePDFDocument is returned for vector renditions under the fail policy
	ErrCannotCreatePDFDocument = errors.New("cannot create PDF document")

	// ErrInvalidData is returned when an existing Contents.json cannot be decoded
	ErrInvalidData = scale.ErrInvalidData
)
