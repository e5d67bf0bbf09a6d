package operation

import (
	"context"

	"github.com/lehigh-university-libraries/acextract/internal/catalog"
)

// Operation is a unit of work over a catalog
type Operation interface {
	Read(ctx context.Context, c catalog.Catalog) error
}

// Compound runs its operations in order and stops at the first failure
type Compound []Operation

func (ops Compound) Read(ctx context.Context, c catalog.Catalog) error {
	for _, op := range ops {
		if err := op.Read(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
