package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "PL:"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a session cache backed by redis
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) key(connID string) string {
	return keyPrefix + connID
}

func (c *redisCache) Get(ctx context.Context, connID string) (*PlayerSession, error) {
	data, err := c.client.Get(ctx, c.key(connID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess PlayerSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (c *redisCache) Set(ctx context.Context, connID string, sess *PlayerSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := c.client.Set(ctx, c.key(connID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, connID string) error {
	if err := c.client.Del(ctx, c.key(connID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
