package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/formlo/formlo/internal/entity"
)

// JobCache is a read-through cache for job status polling. The pipeline
// writes through on every persisted transition; GET /jobs handlers read it
// before hitting the database.
type JobCache interface {
	Set(ctx context.Context, job *entity.Job) error
	Get(ctx context.Context, id string) (*entity.Job, error)
	Delete(ctx context.Context, id string) error
}

type jobCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewJobCache(client *redis.Client, ttl time.Duration) JobCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &jobCache{client: client, ttl: ttl}
}

func (c *jobCache) Set(ctx context.Context, job *entity.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "job:"+job.ID, data, c.ttl).Err()
}

func (c *jobCache) Get(ctx context.Context, id string) (*entity.Job, error) {
	data, err := c.client.Get(ctx, "job:"+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var job entity.Job
	err = json.Unmarshal([]byte(data), &job)
	return &job, err
}

func (c *jobCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "job:"+id).Err()
}

// Noop is used when no Redis address is configured; every read misses.
type Noop struct{}

func (Noop) Set(ctx context.Context, job *entity.Job) error          { return nil }
func (Noop) Get(ctx context.Context, id string) (*entity.Job, error) { return nil, nil }
func (Noop) Delete(ctx context.Context, id string) error             { return nil }
