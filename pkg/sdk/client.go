package huematch

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbPostgres "github.com/kailas-cloud/huematch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/huematch/internal/db/redis"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
	"github.com/kailas-cloud/huematch/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/huematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/huematch/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "huematch:"
	defaultTable            = "products"
)

// Internal interfaces so tests can swap the pipeline.
type recommendUseCase interface {
	Recommend(ctx context.Context, sel facet.Selection, q recommenduc.Query) (recommendation.Result, error)
	Bounds(ctx context.Context, sel facet.Selection) (recommendation.Bounds, int, error)
}

// Client is the huematch embedding entry point.
type Client struct {
	closeFn      func()
	recommendSvc recommendUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// source is an opened catalog with its health check.
type source struct {
	loader  recommenduc.CatalogLoader
	pinger  healthuc.Pinger
	closeFn func()
}

// New creates a Client and connects to the catalog.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:    defaultKeyPrefix,
		table:        defaultTable,
		qualityScale: product.DefaultQualityScale,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("huematch: catalog required (use WithValkey, WithRedis, WithPostgres or WithFile)")
	}

	normalizer, err := product.NewNormalizer(cfg.qualityScale)
	if err != nil {
		return nil, fmt.Errorf("huematch: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		closeFn:      src.closeFn,
		recommendSvc: recommenduc.New(src.loader, normalizer),
		healthSvc:    healthuc.New(healthuc.Component{Name: "catalog", Pinger: src.pinger}),
		obs:          obs,
	}, nil
}

func openSource(ctx context.Context, cfg *clientConfig) (*source, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("huematch: create %s store: %w", cfg.driver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("huematch: %s not ready: %w", cfg.driver, err)
		}
		return &source{loader: catalog.NewRedis(s, cfg.keyPrefix), pinger: s, closeFn: s.Close}, nil
	case "postgres":
		s, err := dbPostgres.NewStore(dbPostgres.Config{DSN: cfg.dsn})
		if err != nil {
			return nil, fmt.Errorf("huematch: create postgres store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("huematch: postgres not ready: %w", err)
		}
		return &source{loader: catalog.NewPostgres(s, cfg.table), pinger: s, closeFn: s.Close}, nil
	case "file":
		repo := catalog.NewFile(cfg.path)
		if err := repo.Ping(ctx); err != nil {
			return nil, fmt.Errorf("huematch: %w", err)
		}
		return &source{loader: repo, pinger: repo}, nil
	default:
		return nil, fmt.Errorf("huematch: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}
