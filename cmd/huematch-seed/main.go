// Command huematch-seed loads a YAML catalog file into the configured
// Redis, Valkey or Postgres catalog store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/config"
	dbPostgres "github.com/kailas-cloud/huematch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/huematch/internal/db/redis"
	"github.com/kailas-cloud/huematch/internal/domain"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	logpkg "github.com/kailas-cloud/huematch/internal/logger"
	"github.com/kailas-cloud/huematch/internal/repository/catalog"
	"github.com/kailas-cloud/huematch/internal/version"
)

// importer writes catalog rows into a store.
type importer interface {
	Import(ctx context.Context, records []product.Record) error
}

func main() {
	file := flag.String("file", "config/catalog.sample.yaml", "YAML catalog to import")
	strict := flag.Bool("strict", false, "fail on the first malformed row instead of skipping it")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, *file, *strict, logger); err != nil {
		logger.Fatal("Seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, path string, strict bool, logger *zap.Logger) error {
	records, err := catalog.ReadFile(path)
	if err != nil {
		return err
	}

	normalizer, err := product.NewNormalizer(cfg.Scoring.QualityScale)
	if err != nil {
		return err
	}
	valid, err := filterValid(records, normalizer, strict, logger)
	if err != nil {
		return err
	}

	dst, closeFn, err := openImporter(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := dst.Import(ctx, valid); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logger.Info("Catalog seeded",
		zap.String("driver", cfg.Catalog.Driver),
		zap.String("file", path),
		zap.Int("imported", len(valid)),
		zap.Int("skipped", len(records)-len(valid)),
	)
	return nil
}

// filterValid drops rows the normalizer would reject so the store only holds
// rankable products.
func filterValid(
	records []product.Record, n *product.Normalizer, strict bool, logger *zap.Logger,
) ([]product.Record, error) {
	valid := make([]product.Record, 0, len(records))
	for i := range records {
		if _, err := n.Normalize(&records[i]); err != nil {
			if strict {
				return nil, err
			}
			var mre *domain.MalformedRecordError
			if errors.As(err, &mre) {
				logger.Warn("Skipping malformed row",
					zap.String("id", mre.RecordID),
					zap.String("field", mre.Field),
					zap.String("reason", mre.Reason),
				)
			} else {
				logger.Warn("Skipping malformed row", zap.Error(err))
			}
			continue
		}
		valid = append(valid, records[i])
	}
	return valid, nil
}

func openImporter(ctx context.Context, cfg config.CatalogConfig) (importer, func(), error) {
	readiness := time.Duration(cfg.ReadinessTimeout) * time.Second

	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Addrs, Password: cfg.Password})
		if err != nil {
			return nil, nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		return catalog.NewRedis(store, cfg.KeyPrefix), store.Close, nil

	case config.DriverPostgres:
		store, err := dbPostgres.NewStore(dbPostgres.Config{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, fmt.Errorf("create postgres store: %w", err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("postgres not ready: %w", err)
		}
		repo := catalog.NewPostgres(store, cfg.Table)
		if err := repo.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return repo, store.Close, nil

	case config.DriverFile:
		return nil, nil, fmt.Errorf("driver %q reads the YAML file directly; nothing to seed", cfg.Driver)

	default:
		return nil, nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}
