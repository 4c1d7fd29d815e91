package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/rueidis"

	config "todo-assist.com/todo-assist/internal/configs"
	model "todo-assist.com/todo-assist/internal/models"
)

// TodoCache holds recently read todos in redis under "todo:{id}" keys.
// A nil client disables caching; all methods become no-ops. Cache
// failures are logged and never propagated.
type TodoCache struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewTodoCache(client rueidis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{
		client: client,
		ttl:    ttl,
	}
}

func key(id string) string {
	return "todo:" + id
}

func (c *TodoCache) Get(ctx context.Context, id string) (*model.Todo, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Do(
		ctx,
		c.client.B().Get().Key(key(id)).Build(),
	).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			config.Logger.Warnw("cache read failed", "todoID", id, "error", err)
		}
		return nil, false
	}

	var todo model.Todo
	if err := json.Unmarshal(raw, &todo); err != nil {
		config.Logger.Warnw("cache entry undecodable", "todoID", id, "error", err)
		return nil, false
	}

	return &todo, true
}

func (c *TodoCache) Set(ctx context.Context, todo *model.Todo) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(todo)
	if err != nil {
		config.Logger.Warnw("cache encode failed", "todoID", todo.ID, "error", err)
		return
	}

	err = c.client.Do(
		ctx,
		c.client.B().Set().Key(key(todo.ID)).Value(string(raw)).
			ExSeconds(int64(c.ttl.Seconds())).Build(),
	).Error()
	if err != nil {
		config.Logger.Warnw("cache write failed", "todoID", todo.ID, "error", err)
	}
}

func (c *TodoCache) Invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}

	err := c.client.Do(
		ctx,
		c.client.B().Del().Key(key(id)).Build(),
	).Error()
	if err != nil {
		config.Logger.Warnw("cache invalidation failed", "todoID", id, "error", err)
	}
}
