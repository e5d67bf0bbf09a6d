package operation

import (
	"context"
	"fmt"
	"io"

	"github.com/lehigh-university-libraries/acextract/internal/catalog"
)

// List prints every image set followed by its named images
type List struct {
	out io.Writer
}

// NewList creates a list operation writing to out
func NewList(out io.Writer) *List {
	return &List{out: out}
}

func (l *List) Read(ctx context.Context, c catalog.Catalog) error {
	sets, err := c.ImageSets(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate catalog: %w", err)
	}

	for _, set := range sets {
		if _, err := fmt.Fprintln(l.out, set.Name); err != nil {
			return err
		}
		for _, img := range set.Images {
			if _, err := fmt.Fprintf(l.out, "  %s\n", img.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}
