package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "maze:"
	lockSuffix = ":regen_lock"
	lockExpiry = 5 * time.Second
)

// entry is the cached form of a maze and its record.
type entry struct {
	Record dmn.MazeRecord `json:"record"`
	Maze   *maze.Maze     `json:"maze"`
}

// RedisMazeCache caches generated mazes in Redis with a TTL and guards their
// regeneration with a distributed lock.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.MazeCache = &RedisMazeCache{}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (*RedisMazeCache, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}

	return &RedisMazeCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Get returns the cached record and maze, or dmn.ErrCacheMiss.
func (c *RedisMazeCache) Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error) {
	payload, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil, dmn.ErrCacheMiss
	}
	if err != nil {
		return nil, nil, err
	}

	record, m, err := decode(payload, id)
	if err != nil {
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, nil, err
	}
	return record, m, nil
}

// Set caches a record together with its maze for the configured TTL.
func (c *RedisMazeCache) Set(ctx context.Context, record *dmn.MazeRecord, m *maze.Maze) error {
	payload, err := json.Marshal(entry{Record: *record, Maze: m})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(record.ID), payload, c.ttl).Err()
}

// Lock acquires the regeneration lock of a maze.
func (c *RedisMazeCache) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := c.locker.NewMutex(key(id)+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// decode parses a cached entry and rejects entries stored under another id,
// mazes that do not match their record and mazes whose walls do not form a
// perfect maze. Mismatches are reported as dmn.ErrCacheMiss.
func decode(payload []byte, id uuid.UUID) (*dmn.MazeRecord, *maze.Maze, error) {
	var e entry
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, nil, fmt.Errorf("decoding cached maze: %w", err)
	}
	if e.Maze == nil {
		return nil, nil, fmt.Errorf("decoding cached maze: %w", dmn.ErrCacheMiss)
	}
	if e.Record.ID != id {
		return nil, nil, fmt.Errorf("cached maze %s stored under %s: %w", e.Record.ID, id, dmn.ErrCacheMiss)
	}
	if e.Maze.Height != e.Record.Height || e.Maze.Width != e.Record.Width {
		return nil, nil, fmt.Errorf("cached maze %s is %dx%d, record says %dx%d: %w",
			id, e.Maze.Height, e.Maze.Width, e.Record.Height, e.Record.Width, dmn.ErrCacheMiss)
	}
	if err := e.Maze.Validate(); err != nil {
		return nil, nil, fmt.Errorf("decoding cached maze %s: %w", id, err)
	}
	return &e.Record, e.Maze, nil
}
