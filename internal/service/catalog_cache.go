package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	catalogKeyPrefix = "catalog:"

	// tombstone marks a deleted row. Ids are never reused, so a tombstoned
	// key never has to hold a value again.
	tombstone = "\x00deleted"

	// Timeout for individual Redis operations
	cacheOpTimeout = 2 * time.Second
)

// CatalogCache is a read-through Redis cache for doctors and
// specializations. Those rows are never updated in place; deleting one
// replaces its key with a tombstone, and loads only ever fill an empty key,
// so a load racing a delete cannot resurrect the row. Redis failures degrade
// to reading the database.
//
// A nil *CatalogCache, or one built with a nil client, disables caching.
type CatalogCache struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
	group  singleflight.Group
}

func NewCatalogCache(client *redis.Client, log *logrus.Logger, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func DoctorCacheKey(id int64) string {
	return fmt.Sprintf("%sdoctor:%d", catalogKeyPrefix, id)
}

func SpecializationCacheKey(id int64) string {
	return fmt.Sprintf("%sspecialization:%d", catalogKeyPrefix, id)
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.client != nil
}

// FetchCached returns the cached value for key, or calls load and caches a
// non-nil result. A tombstoned key yields (nil, nil) without calling load.
// Concurrent misses on the same key share one load.
func FetchCached[T any](ctx context.Context, c *CatalogCache, key string, load func(context.Context) (*T, error)) (*T, error) {
	if !c.enabled() {
		return load(ctx)
	}

	readCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	raw, err := c.client.Get(readCtx, key).Bytes()
	cancel()
	switch {
	case err == nil:
		if string(raw) == tombstone {
			return nil, nil
		}
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
		c.log.WithContext(ctx).Warnf("Discarding undecodable cache entry %s", key)
		c.discard(ctx, key, raw)
	case !errors.Is(err, redis.Nil):
		c.log.WithContext(ctx).Warnf("Catalog cache read failed for %s: %v", key, err)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		item, err := load(ctx)
		if err != nil || item == nil {
			return item, err
		}
		c.store(ctx, key, item)
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// store fills key only while it is empty, so a tombstone written by a
// concurrent Invalidate is never overwritten.
func (c *CatalogCache) store(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.WithContext(ctx).Warnf("Failed to encode cache entry %s: %v", key, err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	if err := c.client.SetNX(writeCtx, key, payload, c.ttl).Err(); err != nil {
		c.log.WithContext(ctx).Warnf("Catalog cache write failed for %s: %v", key, err)
	}
}

// discard drops an undecodable entry unless it has been replaced meanwhile.
func (c *CatalogCache) discard(ctx context.Context, key string, raw []byte) {
	delCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	err := c.client.Watch(delCtx, func(tx *redis.Tx) error {
		current, err := tx.Get(delCtx, key).Bytes()
		if err != nil || string(current) != string(raw) {
			return nil
		}
		_, err = tx.TxPipelined(delCtx, func(pipe redis.Pipeliner) error {
			pipe.Del(delCtx, key)
			return nil
		})
		return err
	}, key)
	if err != nil {
		c.log.WithContext(ctx).Warnf("Failed to drop cache entry %s: %v", key, err)
	}
}

// Invalidate tombstones keys after their rows are deleted. Failures are
// logged only; entries expire after the configured TTL anyway.
func (c *CatalogCache) Invalidate(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}

	setCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	_, err := c.client.Pipelined(setCtx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Set(setCtx, key, tombstone, c.ttl)
		}
		return nil
	})
	if err != nil {
		c.log.WithContext(ctx).Warnf("Catalog cache invalidation failed for %v: %v", keys, err)
	}
}
