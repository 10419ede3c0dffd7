package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "easytech:session:"

// RedisStore keeps sessions as Redis keys that expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID int) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, redisKeyPrefix+sid, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (int, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrNotFound
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, redisKeyPrefix+sid).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
