package recommend

import (
	"context"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// CatalogLoader fetches the raw catalog rows matching a facet selection.
// Rows must come back in a deterministic order; ranking ties follow it.
type CatalogLoader interface {
	Load(ctx context.Context, sel facet.Selection) ([]product.Record, error)
}
