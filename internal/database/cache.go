package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Cache is a typed read-through/write-through layer over one collection.
// Reads try Redis first, then Mongo by id or lowercased name; a Mongo hit
// is NOT written back to Redis, so only writers populate the cache.
type Cache[T any] struct {
	rdb      *redis.Client
	coll     *mongo.Collection
	resource string
	lifetime time.Duration
	idOf     func(*T) string
	logger   *zap.SugaredLogger
}

func NewCache[T any](rdb *redis.Client, coll *mongo.Collection, resource string, lifetime time.Duration, idOf func(*T) string, logger *zap.SugaredLogger) *Cache[T] {
	return &Cache[T]{
		rdb:      rdb,
		coll:     coll,
		resource: resource,
		lifetime: lifetime,
		idOf:     idOf,
		logger:   logger,
	}
}

func (c *Cache[T]) key(key string) string {
	return c.resource + ":" + lower(key)
}

// Get returns (nil, nil) when the document exists nowhere.
func (c *Cache[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	switch {
	case err == nil:
		var doc T
		if jsonErr := json.Unmarshal(raw, &doc); jsonErr != nil {
			c.logger.Warnw("Discarding undecodable cache entry", "resource", c.resource, "key", key, "error", jsonErr)
		} else {
			return &doc, nil
		}
	case !errors.Is(err, redis.Nil):
		return nil, err
	}

	var doc T
	err = c.coll.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"nameLower": lower(key)},
		bson.M{"_id": key},
	}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Set writes the cache entry under the default lifetime, persisting the
// document to Mongo first when asked.
func (c *Cache[T]) Set(ctx context.Context, key string, doc *T, persist bool) error {
	return c.SetWithExpiry(ctx, key, doc, persist, c.lifetime)
}

func (c *Cache[T]) SetWithExpiry(ctx context.Context, key string, doc *T, persist bool, ttl time.Duration) error {
	if persist {
		if err := Save(ctx, c.coll, c.idOf(doc), doc); err != nil {
			return err
		}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

// Persist flushes an already-cached entry to Mongo.
func (c *Cache[T]) Persist(ctx context.Context, key string) error {
	doc, err := c.Get(ctx, key)
	if err != nil || doc == nil {
		return err
	}
	return Save(ctx, c.coll, c.idOf(doc), doc)
}
