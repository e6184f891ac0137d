package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/huematch/internal/db"
	"github.com/kailas-cloud/huematch/internal/domain/facet"
	"github.com/kailas-cloud/huematch/internal/domain/product"
)

// kvStore is the consumer interface for the Redis/Valkey catalog (ISP).
type kvStore interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisRepo reads catalog rows stored as hashes with per-facet id sets.
type RedisRepo struct {
	store  kvStore
	prefix string
}

// NewRedis creates a Redis/Valkey catalog repository.
func NewRedis(s kvStore, keyPrefix string) *RedisRepo {
	return &RedisRepo{store: s, prefix: keyPrefix}
}

// Load returns the rows matching sel ordered by id.
// Index entries whose hash is gone are skipped.
func (r *RedisRepo) Load(ctx context.Context, sel facet.Selection) ([]product.Record, error) {
	ids, err := r.store.SMembers(ctx, indexKey(r.prefix, sel))
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", sel.PersonalColor, err)
	}
	if len(ids) == 0 {
		return []product.Record{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(r.prefix, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall products: %w", err)
	}

	records := make([]product.Record, 0, len(hashes))
	for _, h := range hashes {
		if len(h) == 0 {
			continue
		}
		rec := product.RecordFromFields(h)
		if !sel.Matches(rec.PersonalColor, rec.ProductType) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Import replaces the catalog under the key prefix: every index set and
// every product hash not in records is deleted, then records are written
// as hashes and added to their facet indexes.
// Records without an id are rejected up front.
func (r *RedisRepo) Import(ctx context.Context, records []product.Record) error {
	items := make([]db.HashSetItem, 0, len(records))
	index := make(map[string][]string)
	var order []string

	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			return fmt.Errorf("record %d (%q): missing id", i, rec.Name)
		}
		items = append(items, db.HashSetItem{Key: productKey(r.prefix, rec.ID), Fields: rec.Fields()})

		for _, key := range []string{
			personalColorIndexKey(r.prefix, rec.PersonalColor),
			productTypeIndexKey(r.prefix, rec.PersonalColor, rec.ProductType),
		} {
			if _, ok := index[key]; !ok {
				order = append(order, key)
			}
			index[key] = append(index[key], rec.ID)
		}
	}

	stale, err := r.staleKeys(ctx, items)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, stale...); err != nil {
		return fmt.Errorf("del stale keys: %w", err)
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset products: %w", err)
	}
	for _, key := range order {
		if err := r.store.SAdd(ctx, key, index[key]...); err != nil {
			return fmt.Errorf("sadd %s: %w", key, err)
		}
	}
	return nil
}

// staleKeys lists the index sets under the prefix, which are always rebuilt,
// and the product hashes whose id is not being written.
func (r *RedisRepo) staleKeys(ctx context.Context, items []db.HashSetItem) ([]string, error) {
	indexes, err := r.store.Scan(ctx, r.prefix+"idx:*")
	if err != nil {
		return nil, fmt.Errorf("scan indexes: %w", err)
	}
	products, err := r.store.Scan(ctx, productKey(r.prefix, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	keep := make(map[string]struct{}, len(items))
	for _, item := range items {
		keep[item.Key] = struct{}{}
	}

	stale := indexes
	for _, key := range products {
		if _, ok := keep[key]; !ok {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)
	return stale, nil
}
