package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/duelcode-game/duelcode/internal/model"
	"github.com/duelcode-game/duelcode/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Match logs are Redis lists, pushed newest-first and trimmed to MaxMatches.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveMatch(ctx context.Context, match *model.MatchSummary) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	// Pipeline the pushes and trims so both logs stay consistent
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, matchLogKey(), data)
	pipe.LTrim(ctx, matchLogKey(), 0, int64(s.cfg.MaxMatches)-1)

	roomKey := roomLogKey(match.RoomID)
	pipe.LPush(ctx, roomKey, data)
	pipe.LTrim(ctx, roomKey, 0, int64(s.cfg.MaxMatches)-1)
	if s.cfg.RoomLogTTL > 0 {
		pipe.Expire(ctx, roomKey, s.cfg.RoomLogTTL)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) RecentMatches(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	return s.readLog(ctx, matchLogKey(), limit)
}

func (s *Storage) MatchesForRoom(ctx context.Context, roomID model.RoomID, limit int) ([]*model.MatchSummary, error) {
	return s.readLog(ctx, roomLogKey(roomID), limit)
}

func (s *Storage) readLog(ctx context.Context, key string, limit int) ([]*model.MatchSummary, error) {
	if limit <= 0 {
		return []*model.MatchSummary{}, nil
	}

	entries, err := s.client.LRange(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.MatchSummary, 0, len(entries))
	for _, entry := range entries {
		var match model.MatchSummary
		if err := json.Unmarshal([]byte(entry), &match); err != nil {
			return nil, err
		}
		matches = append(matches, &match)
	}
	return matches, nil
}
