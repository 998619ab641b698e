package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nibzard/doable-go/internal/board"
)

// Default Redis names used when the configuration leaves them empty.
const (
	DefaultRedisKey     = "doable:board"
	DefaultRedisChannel = "doable:board:changes"
)

// RedisSink stores the latest snapshot under a key and publishes it on a
// channel.
type RedisSink struct {
	client  *redis.Client
	key     string
	channel string
}

// NewRedisSink creates a sink using client. Empty key or channel take the
// defaults.
func NewRedisSink(client *redis.Client, key, channel string) *RedisSink {
	if client == nil {
		panic("notify.NewRedisSink: client is nil")
	}
	if key == "" {
		key = DefaultRedisKey
	}
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisSink{client: client, key: key, channel: channel}
}

// Key returns the snapshot key.
func (s *RedisSink) Key() string { return s.key }

// Channel returns the publish channel.
func (s *RedisSink) Channel() string { return s.channel }

// Notify implements Sink.
func (s *RedisSink) Notify(ctx context.Context, b board.Board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", s.channel, err)
	}
	return nil
}

// Latest reads the stored snapshot. ok is false when the key is missing.
func (s *RedisSink) Latest(ctx context.Context) (b board.Board, ok bool, err error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return board.Board{}, false, nil
		}
		return board.Board{}, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return board.Board{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return b, true, nil
}
