// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"ielts_backend/internal/feature/essays/domain/entity"
)

// TopicStore is the full topic repository the cache decorates.
type TopicStore interface {
	List(ctx context.Context) ([]entity.Topic, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Topic, error)
	Create(ctx context.Context, t *entity.Topic) error
	Update(ctx context.Context, id uuid.UUID, text string) (*entity.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CachingTopicRepository decorates a TopicStore with Redis caching of reads.
// Writes go to the inner store first and then invalidate the affected keys.
type CachingTopicRepository struct {
	inner     TopicStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTopicRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "topics".
// A nil rdb disables caching.
func NewCachingTopicRepository(rdb *redis.Client, ttl time.Duration, inner TopicStore, namespace string) *CachingTopicRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "topics"
	}
	return &CachingTopicRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingTopicRepository) listKey() string {
	return c.namespace + ":all"
}

func (c *CachingTopicRepository) topicKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, id)
}

// readThrough serves key from Redis or loads it with load and stores the result.
func readThrough[T any](ctx context.Context, c *CachingTopicRepository, key string, load func() (T, error)) (T, error) {
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to populate topic cache")
		}
	}
	return out, nil
}

// List returns all topics, from cache when possible.
func (c *CachingTopicRepository) List(ctx context.Context) ([]entity.Topic, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	return readThrough(ctx, c, c.listKey(), func() ([]entity.Topic, error) {
		return c.inner.List(ctx)
	})
}

// FindByID returns a topic, from cache when possible. Misses are not cached.
func (c *CachingTopicRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Topic, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	return readThrough(ctx, c, c.topicKey(id), func() (*entity.Topic, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// Create inserts a topic and invalidates the cached list.
func (c *CachingTopicRepository) Create(ctx context.Context, t *entity.Topic) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// Update changes a topic and invalidates it and the cached list.
func (c *CachingTopicRepository) Update(ctx context.Context, id uuid.UUID, text string) (*entity.Topic, error) {
	t, err := c.inner.Update(ctx, id, text)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, c.listKey(), c.topicKey(id))
	return t, nil
}

// Delete removes a topic and invalidates it and the cached list.
func (c *CachingTopicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.topicKey(id))
	return nil
}

// invalidate is best effort: a stale entry expires with the TTL.
func (c *CachingTopicRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate topic cache")
	}
}
