package wishlist

import (
	"context"
	"errors"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the slot as a plain string key without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, opts *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]dal.Car, error) {
	data, err := s.client.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (s *RedisStore) Save(ctx context.Context, cars []dal.Car) error {
	data, err := encode(cars)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, Key, data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
