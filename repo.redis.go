package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisLibraryStore struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisLibraryStore provides an instance of redis-based library storage.
// The library is kept as one list, element order being the library order.
func NewRedisLibraryStore(logger *zap.Logger, config *RedisConfig, client *redis.Client) LibraryStore {
	return &redisLibraryStore{
		logger: logger,
		client: client,
		key:    config.Key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		client.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Close releases the redis connections pool.
func (rs *redisLibraryStore) Close() error {
	return rs.client.Close()
}

// Save replaces the list content atomically with the given books.
func (rs *redisLibraryStore) Save(ctx context.Context, books []Book) error {
	values := make([]interface{}, 0, len(books))
	for _, book := range books {
		bookBytes, err := json.Marshal(book)
		if err != nil {
			return err
		}
		values = append(values, bookBytes)
	}

	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.key)
		if len(values) > 0 {
			pipe.RPush(ctx, rs.key, values...)
		}
		return nil
	})
	return err
}

// Load retrieves all books stored under the library key. A missing key is an empty library.
func (rs *redisLibraryStore) Load(ctx context.Context) ([]Book, error) {
	items, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(items))
	for i, bookJSONString := range items {
		book, err := decodeBookRecord([]byte(bookJSONString))
		if err != nil {
			return nil, fmt.Errorf("malformed book record at index %d: %w", i, err)
		}
		books = append(books, book)
	}
	return books, nil
}
