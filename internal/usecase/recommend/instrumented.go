package recommend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/metrics"
)

// InstrumentedLoader wraps a CatalogLoader with load latency metrics and logging.
type InstrumentedLoader struct {
	inner  CatalogLoader
	driver string
	logger *zap.Logger
}

// NewInstrumentedLoader wraps a loader. driver labels the metrics.
func NewInstrumentedLoader(inner CatalogLoader, driver string, logger *zap.Logger) *InstrumentedLoader {
	return &InstrumentedLoader{inner: inner, driver: driver, logger: logger}
}

// Load delegates to the inner loader and records how long it took.
func (l *InstrumentedLoader) Load(ctx context.Context, sel facet.Selection) ([]product.Record, error) {
	start := time.Now()
	records, err := l.inner.Load(ctx, sel)
	duration := time.Since(start)

	if err != nil {
		metrics.CatalogLoadDuration.WithLabelValues(l.driver, "error").Observe(duration.Seconds())
		l.logger.Error("Catalog load failed",
			zap.String("driver", l.driver),
			zap.String("personal_color", string(sel.PersonalColor)),
			zap.String("product_type", string(sel.ProductType)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	metrics.CatalogLoadDuration.WithLabelValues(l.driver, "ok").Observe(duration.Seconds())
	l.logger.Debug("Catalog loaded",
		zap.String("driver", l.driver),
		zap.Int("records", len(records)),
		zap.Duration("duration", duration),
	)
	return records, nil
}
