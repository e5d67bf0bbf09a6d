package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

const (
	KindRaster = "raster"
	KindVector = "vector"
)

// RenditionRow is one row of a parquet catalog
type RenditionRow struct {
	Set  string `parquet:"set"`
	Name string `parquet:"name"`
	Kind string `parquet:"kind"`
	Data []byte `parquet:"data"`
}

// Parquet reads renditions stored as rows of a parquet file. Rows are
// grouped by set in first-seen order.
type Parquet struct {
	path string
}

// NewParquet creates a parquet catalog
func NewParquet(path string) *Parquet {
	return &Parquet{path: path}
}

// ImageSets reads every row of the file
func (p *Parquet) ImageSets(ctx context.Context) ([]ImageSet, error) {
	slog.Debug("Opening Parquet catalog", "path", p.path)

	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet catalog opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[RenditionRow](pf)
	defer reader.Close()

	var sets []ImageSet
	index := make(map[string]int)
	rows := make([]RenditionRow, 128)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			i, ok := index[row.Set]
			if !ok {
				i = len(sets)
				index[row.Set] = i
				sets = append(sets, ImageSet{Name: row.Set})
			}
			sets[i].Images = append(sets[i].Images, &memoryImage{
				name: row.Name,
				kind: row.Kind,
				data: append([]byte(nil), row.Data...),
			})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet catalog", "sets", len(sets))
	return sets, nil
}
